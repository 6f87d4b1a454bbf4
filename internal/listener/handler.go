package listener

import (
	"context"
	"net/http"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/pixil98/go-voxsync/internal/catalog"
	"github.com/pixil98/go-voxsync/internal/room"
)

const (
	DefaultMaxBodyBytes      = 64 << 10
	DefaultKeepAliveInterval = 15 * time.Second
	DefaultChannelBuffer     = 256
)

// RoomService is the room engine the endpoints drive.
type RoomService interface {
	Decode(data []byte) (room.Action, error)
	Submit(ctx context.Context, roomId string, a room.Action) (*room.Event, error)
	Subscribe(ctx context.Context, roomId, name string, ch room.Channel) (*room.Subscription, error)
	Snapshot(roomId string) room.Event
	Rooms() int
}

// Handler routes the room, catalog and health endpoints.
type Handler struct {
	rooms   RoomService
	catalog *catalog.Catalog

	maxBodyBytes  int64
	keepAlive     time.Duration
	channelBuffer int
	compress      bool

	mux *http.ServeMux
}

type HandlerOpt func(*Handler)

func WithMaxBodyBytes(n int64) HandlerOpt {
	return func(h *Handler) {
		h.maxBodyBytes = n
	}
}

// WithKeepAlive sets how often idle streams get a comment frame. Zero
// disables keep-alives.
func WithKeepAlive(d time.Duration) HandlerOpt {
	return func(h *Handler) {
		h.keepAlive = d
	}
}

func WithChannelBuffer(n int) HandlerOpt {
	return func(h *Handler) {
		h.channelBuffer = n
	}
}

// WithCompression gzips the non-streaming JSON responses.
func WithCompression(enabled bool) HandlerOpt {
	return func(h *Handler) {
		h.compress = enabled
	}
}

// NewHandler builds the HTTP surface. cat may be nil when no block catalog
// is configured.
func NewHandler(rooms RoomService, cat *catalog.Catalog, opts ...HandlerOpt) *Handler {
	h := &Handler{
		rooms:         rooms,
		catalog:       cat,
		maxBodyBytes:  DefaultMaxBodyBytes,
		keepAlive:     DefaultKeepAliveInterval,
		channelBuffer: DefaultChannelBuffer,
		compress:      true,
	}

	for _, opt := range opts {
		opt(h)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /rooms/{roomId}", h.serveStream)
	mux.HandleFunc("POST /rooms/{roomId}", h.serveSubmit)
	mux.Handle("GET /rooms/{roomId}/state", h.compressed(http.HandlerFunc(h.serveState)))
	mux.Handle("GET /blocks", h.compressed(http.HandlerFunc(h.serveCatalog)))
	mux.HandleFunc("GET /healthz", h.serveHealth)
	h.mux = mux

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) compressed(next http.Handler) http.Handler {
	if !h.compress {
		return next
	}
	return gzhttp.GzipHandler(next)
}

func (h *Handler) serveState(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, h.rooms.Snapshot(r.PathValue("roomId")))
}

func (h *Handler) serveCatalog(w http.ResponseWriter, r *http.Request) {
	entries := []catalog.Entry{}
	if h.catalog != nil {
		entries = h.catalog.Entries()
	}
	writeJSON(r.Context(), w, http.StatusOK, map[string]any{"blocks": entries})
}

func (h *Handler) serveHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]any{
		"status": "ok",
		"rooms":  h.rooms.Rooms(),
	})
}
