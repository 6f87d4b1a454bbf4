package listener

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/pixil98/go-voxsync/internal/room"
)

type submitResponse struct {
	Success bool `json:"success"`
}

// serveSubmit applies one action to a room. The originator receives its own
// echo on its stream like every other subscriber.
func (h *Handler) serveSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	roomId := r.PathValue("roomId")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(ctx, w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(ctx, w, http.StatusBadRequest, "reading request body failed")
		return
	}

	action, err := h.rooms.Decode(body)
	if err != nil {
		h.writeActionError(w, r, err)
		return
	}

	if _, err := h.rooms.Submit(ctx, roomId, action); err != nil {
		h.writeActionError(w, r, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, submitResponse{Success: true})
}

func (h *Handler) writeActionError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	var pe *room.PayloadError
	if errors.As(err, &pe) {
		slog.DebugContext(ctx, "rejected action", "room", r.PathValue("roomId"), "error", err)
		writeError(ctx, w, http.StatusBadRequest, pe.Error())
		return
	}

	slog.ErrorContext(ctx, "applying action", "room", r.PathValue("roomId"), "error", err)
	writeError(ctx, w, http.StatusInternalServerError, "processing action failed")
}
