package room

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestQueueChannel_Send(t *testing.T) {
	ch := NewQueueChannel(2)

	if err := ch.Send([]byte("one")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ch.Send([]byte("two")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := ch.Send([]byte("three"))
	if !errors.Is(err, ErrChannelFull) {
		t.Fatalf("error = %v, expected %v", err, ErrChannelFull)
	}

	select {
	case <-ch.Done():
	default:
		t.Fatal("full channel should be closed")
	}

	err = ch.Send([]byte("four"))
	if !errors.Is(err, ErrChannelClosed) {
		t.Errorf("error = %v, expected %v", err, ErrChannelClosed)
	}

	testutil.AssertEqual(t, "first frame", string(<-ch.Frames()), "one")
	testutil.AssertEqual(t, "second frame", string(<-ch.Frames()), "two")
}

func TestQueueChannel_Close(t *testing.T) {
	ch := NewQueueChannel(0)
	ch.Close()
	ch.Close()

	err := ch.Send([]byte("x"))
	if !errors.Is(err, ErrChannelClosed) {
		t.Errorf("error = %v, expected %v", err, ErrChannelClosed)
	}
}

func TestQueueChannel_SlowSubscriberIsDetached(t *testing.T) {
	r := NewStore().GetOrCreate("room")
	slow := NewQueueChannel(1)
	fast := &recordingChannel{}
	r.Attach(slow)
	r.Attach(fast)

	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		if _, err := r.Apply(ctx, addBlock(id, 0, 0, 0)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	testutil.AssertEqual(t, "subscribers", r.Subscribers(), 1)
	testutil.AssertEqual(t, "fast events", len(fast.events(t)), 3)

	var e Event
	if err := json.Unmarshal(<-slow.Frames(), &e); err != nil {
		t.Fatalf("decoding frame: %v", err)
	}
	testutil.AssertEqual(t, "slow first block", e.Block.Id, "a")
}
