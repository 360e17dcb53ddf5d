package relay

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	"github.com/rs/zerolog"

	"github.com/nelhage/santorini/wire"
)

var (
	ErrNameTaken = errors.New("name already connected")
	ErrHubClosed = errors.New("hub closed")
)

type HubConfig struct {
	// Handshake bounds the priority exchange with a new connection.
	Handshake time.Duration
	Log       zerolog.Logger
}

// Hub serves GET /join/:name. Every connection that completes the
// handshake is queued for Accept.
type Hub struct {
	cfg      HubConfig
	router   *way.Router
	upgrader websocket.Upgrader
	joined   chan *Proxy
	done     chan struct{}
	once     sync.Once

	mu    sync.Mutex
	names map[string]bool
}

func NewHub(cfg HubConfig) *Hub {
	if cfg.Handshake == 0 {
		cfg.Handshake = 10 * time.Second
	}
	h := &Hub{
		cfg:    cfg,
		router: way.NewRouter(),
		joined: make(chan *Proxy),
		done:   make(chan struct{}),
		names:  make(map[string]bool),
	}
	h.router.HandleFunc("GET", "/join/:name", h.handleJoin)
	return h
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Hub) claim(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.names[name] {
		return false
	}
	h.names[name] = true
	return true
}

func (h *Hub) releaser(name string) func() {
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.names, name)
	}
}

func (h *Hub) handleJoin(w http.ResponseWriter, r *http.Request) {
	name, err := wire.NormalizeName(way.Param(r.Context(), "name"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !h.claim(name) {
		http.Error(w, ErrNameTaken.Error(), http.StatusConflict)
		return
	}
	release := h.releaser(name)
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		release()
		h.cfg.Log.Warn().Err(err).Str("player", name).Msg("upgrade failed")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.cfg.Handshake)
	defer cancel()
	p, err := NewProxy(ctx, conn, name, h.cfg.Log)
	if err != nil {
		release()
		conn.Close()
		h.cfg.Log.Warn().Err(err).Str("player", name).Msg("handshake failed")
		return
	}
	p.release = release
	h.cfg.Log.Info().Str("player", name).Int("priority", p.Priority()).Msg("joined")

	select {
	case h.joined <- p:
	case <-h.done:
		p.Close()
	}
}

// Accept waits for the next remote player.
func (h *Hub) Accept(ctx context.Context) (*Proxy, error) {
	select {
	case p := <-h.joined:
		return p, nil
	case <-h.done:
		return nil, ErrHubClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops handing out players. Connections waiting in handleJoin
// are closed; proxies already accepted are the caller's to close.
func (h *Hub) Close() {
	h.once.Do(func() { close(h.done) })
}
