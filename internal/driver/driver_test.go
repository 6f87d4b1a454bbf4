package driver

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

type countingSweeper struct {
	ticks atomic.Int32
	err   error
}

func (s *countingSweeper) Tick(context.Context) error {
	s.ticks.Add(1)
	return s.err
}

func TestDriver_Tick(t *testing.T) {
	errBoom := errors.New("boom")

	tests := map[string]struct {
		sweepers  []*countingSweeper
		expErr    string
		expCounts []int32
	}{
		"all sweepers run": {
			sweepers:  []*countingSweeper{{}, {}},
			expCounts: []int32{1, 1},
		},
		"error does not skip later sweepers": {
			sweepers:  []*countingSweeper{{err: errBoom}, {}},
			expErr:    "boom",
			expCounts: []int32{1, 1},
		},
		"no sweepers": {},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var ss []Sweeper
			for _, s := range tt.sweepers {
				ss = append(ss, s)
			}

			err := NewDriver(ss).Tick(context.Background())
			if tt.expErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			} else {
				testutil.AssertErrorContains(t, err, tt.expErr)
			}
			for i, s := range tt.sweepers {
				testutil.AssertEqual(t, "ticks", s.ticks.Load(), tt.expCounts[i])
			}
		})
	}
}

func TestWithInterval(t *testing.T) {
	tests := map[string]struct {
		interval time.Duration
		exp      time.Duration
	}{
		"set":      {interval: time.Second, exp: time.Second},
		"zero":     {interval: 0, exp: DefaultInterval},
		"negative": {interval: -time.Second, exp: DefaultInterval},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			d := NewDriver(nil, WithInterval(tt.interval))
			testutil.AssertEqual(t, "interval", d.interval, tt.exp)
		})
	}
}

func TestDriver_Start(t *testing.T) {
	s := &countingSweeper{}
	d := NewDriver([]Sweeper{s}, WithInterval(5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Start(ctx) }()

	deadline := time.After(2 * time.Second)
	for s.ticks.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("driver did not tick")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDriver_StartStopsOnError(t *testing.T) {
	d := NewDriver([]Sweeper{&countingSweeper{err: errors.New("boom")}}, WithInterval(time.Millisecond))

	err := d.Start(context.Background())
	testutil.AssertErrorContains(t, err, "boom")
}
