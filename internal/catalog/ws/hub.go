package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"erpBack/internal/catalog"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	sendBuffer = 16
)

// Logger defines minimal logging interface required by the hub.
type Logger interface {
	Infof(string, ...interface{})
	Errorf(string, ...interface{})
}

// subscriber is one open item editor. Only its write loop touches the
// connection for writing; everything else queues on send.
type subscriber struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

// CategoryHub pushes category events to open item editors so they can
// refresh their category list instead of polling. There is a single stream:
// every subscriber receives every event.
type CategoryHub struct {
	logger   Logger
	upgrader websocket.Upgrader

	mu   sync.RWMutex
	subs map[*subscriber]struct{}
}

// NewCategoryHub constructs an empty hub. Browsers are accepted from the
// listed origins, or from any origin when the list holds "*". With no list
// only same-host pages may connect.
func NewCategoryHub(logger Logger, allowedOrigins []string) *CategoryHub {
	h := &CategoryHub{
		logger: logger,
		subs:   make(map[*subscriber]struct{}),
	}
	if len(allowedOrigins) > 0 {
		h.upgrader.CheckOrigin = originChecker(allowedOrigins)
	}
	return h
}

func originChecker(allowed []string) func(*http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[strings.TrimRight(strings.ToLower(strings.TrimSpace(o)), "/")] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || set["*"] {
			return true
		}
		return set[strings.TrimRight(strings.ToLower(origin), "/")]
	}
}

// ServeWS upgrades the request and keeps the connection until the client leaves.
func (h *CategoryHub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		if h.logger != nil {
			h.logger.Errorf("category ws upgrade failed: %v", err)
		}
		return
	}

	s := &subscriber{conn: conn, send: make(chan []byte, sendBuffer), done: make(chan struct{})}
	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()

	if h.logger != nil {
		h.logger.Infof("category ws connected from %s", r.RemoteAddr)
	}

	go h.writeLoop(s)
	go h.readLoop(s)
}

// HandleEvent broadcasts ev to every subscriber. It matches catalog.Handler.
func (h *CategoryHub) HandleEvent(_ context.Context, ev catalog.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		if h.logger != nil {
			h.logger.Errorf("category ws marshal failed: %v", err)
		}
		return
	}

	h.mu.RLock()
	var slow []*subscriber
	for s := range h.subs {
		select {
		case s.send <- data:
		default:
			slow = append(slow, s)
		}
	}
	h.mu.RUnlock()

	// a subscriber that cannot keep up reconnects and reloads the list
	for _, s := range slow {
		h.drop(s)
	}
}

// Len returns the number of open connections.
func (h *CategoryHub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (h *CategoryHub) writeLoop(s *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		var err error
		select {
		case <-s.done:
			return
		case msg := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			err = s.conn.WriteMessage(websocket.TextMessage, msg)
		case <-ticker.C:
			err = s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
		}
		if err != nil {
			if h.logger != nil {
				h.logger.Errorf("category ws write failed: %v", err)
			}
			h.drop(s)
			return
		}
	}
}

// readLoop only keeps the read deadline moving and answers text pings;
// clients never send anything the hub acts on.
func (h *CategoryHub) readLoop(s *subscriber) {
	defer h.drop(s)

	s.conn.SetReadLimit(512)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		mt, message, err := s.conn.ReadMessage()
		if err != nil {
			return
		}
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		if mt == websocket.TextMessage && strings.EqualFold(strings.TrimSpace(string(message)), "ping") {
			select {
			case s.send <- []byte("pong"):
			default:
			}
		}
	}
}

func (h *CategoryHub) drop(s *subscriber) {
	s.once.Do(func() {
		h.mu.Lock()
		delete(h.subs, s)
		h.mu.Unlock()
		close(s.done)
		_ = s.conn.Close()
	})
}
