package listener

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/pixil98/go-voxsync/internal/room"
)

// serveStream holds a Server-Sent Events response open for one subscriber.
// The subscription is closed exactly once when the peer goes away, a write
// fails, the channel is dropped for falling behind, or the server shuts down.
func (h *Handler) serveStream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	roomId := r.PathValue("roomId")
	rc := http.NewResponseController(w)

	ch := room.NewQueueChannel(h.channelBuffer)
	defer ch.Close()

	sub, err := h.rooms.Subscribe(ctx, roomId, r.URL.Query().Get("name"), ch)
	if err != nil {
		slog.ErrorContext(ctx, "subscribing", "room", roomId, "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "subscribing failed")
		return
	}
	// The request context is already canceled by the time cleanup runs.
	defer sub.Close(context.WithoutCancel(ctx))

	hdr := w.Header()
	hdr.Set("Content-Type", "text/event-stream")
	hdr.Set("Cache-Control", "no-cache")
	hdr.Set("Connection", "keep-alive")
	hdr.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		slog.WarnContext(ctx, "flushing stream headers", "room", roomId, "conn", sub.ConnId, "error", err)
		return
	}

	var ping <-chan time.Time
	if h.keepAlive > 0 {
		t := time.NewTicker(h.keepAlive)
		defer t.Stop()
		ping = t.C
	}

	for {
		var err error
		select {
		case <-ctx.Done():
			return
		case <-ch.Done():
			slog.InfoContext(ctx, "dropping lagging stream", "room", roomId, "conn", sub.ConnId)
			return
		case frame := <-ch.Frames():
			_, err = fmt.Fprintf(w, "data: %s\n\n", frame)
		case <-ping:
			_, err = fmt.Fprint(w, ": ping\n\n")
		}
		if err == nil {
			err = rc.Flush()
		}
		if err != nil {
			slog.DebugContext(ctx, "writing stream", "room", roomId, "conn", sub.ConnId, "error", err)
			return
		}
	}
}
