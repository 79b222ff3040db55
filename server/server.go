// Package server bridges the simulation core to its external rendering
// collaborators: it broadcasts read-only snapshots over WebSocket,
// forwards user intents (pause toggle, speed change, cell click) into
// the runner, and exposes operational metrics over HTTP.
//
// The renderer itself is out of scope; this package only moves
// snapshots out and commands in.
package server

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	sim "github.com/warehouse-sim/warehouse-sim/sim"
)

const (
	writeWait         = 10 * time.Second
	broadcastInterval = 250 * time.Millisecond
)

// stateMessage is one snapshot frame pushed to every subscriber.
type stateMessage struct {
	Type       string     `json:"type"`
	State      *sim.State `json:"state"`
	ServerTime int64      `json:"serverTime"`
}

// clientMessage is a user intent forwarded into the simulation.
type clientMessage struct {
	Type  string `json:"type"` // toggle_pause | set_speed | cell_click
	Speed int    `json:"speed,omitempty"`
	Row   int    `json:"row,omitempty"`
	Col   int    `json:"col,omitempty"`
}

// errorMessage reports a rejected command back to the sender.
type errorMessage struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *subscriber) writeJSON(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(v)
}

// Server fans snapshots out to WebSocket subscribers and serializes
// their commands into the runner.
type Server struct {
	runner  *sim.Runner
	metrics *metrics

	mu   sync.Mutex
	subs map[*subscriber]struct{}
}

// New builds a server over a runner and instruments the runner's tick
// observer with the Prometheus collectors.
func New(runner *sim.Runner) *Server {
	srv := &Server{
		runner:  runner,
		metrics: newMetrics(),
		subs:    make(map[*subscriber]struct{}),
	}
	runner.OnTick(srv.metrics.observe)
	return srv
}

// ListenAndServe mounts the endpoints and blocks serving HTTP.
func (s *Server) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	go s.broadcastLoop()

	return http.ListenAndServe(addr, mux)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The renderer is served separately during development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.Warnf("ws upgrade: %v", err)
		return
	}

	sub := &subscriber{conn: conn}
	s.mu.Lock()
	s.subs[sub] = struct{}{}
	s.mu.Unlock()
	logrus.Infof("ws subscriber connected: %s", conn.RemoteAddr())

	// Send an immediate snapshot so the renderer has state before the
	// first broadcast tick.
	if err := sub.writeJSON(stateMessage{Type: "state", State: s.runner.Snapshot(), ServerTime: time.Now().UnixMilli()}); err != nil {
		logrus.Warnf("ws initial state: %v", err)
	}

	go s.readLoop(sub)
}

func (s *Server) readLoop(sub *subscriber) {
	defer func() {
		s.mu.Lock()
		delete(s.subs, sub)
		s.mu.Unlock()
		sub.conn.Close()
		logrus.Infof("ws subscriber disconnected: %s", sub.conn.RemoteAddr())
	}()

	for {
		var msg clientMessage
		if err := sub.conn.ReadJSON(&msg); err != nil {
			return
		}
		if err := s.apply(msg); err != nil {
			logrus.Warnf("ws command %q rejected: %v", msg.Type, err)
			if werr := sub.writeJSON(errorMessage{Type: "error", Reason: err.Error()}); werr != nil {
				return
			}
		}
	}
}

// apply forwards one user intent into the runner. The runner serializes
// it with ticks; nothing here touches simulation state directly.
func (s *Server) apply(msg clientMessage) error {
	switch msg.Type {
	case "toggle_pause":
		s.runner.TogglePause()
		return nil
	case "set_speed":
		return s.runner.SetSpeed(msg.Speed)
	case "cell_click":
		return s.runner.CellClick(msg.Row, msg.Col)
	default:
		return fmt.Errorf("unknown command %q", msg.Type)
	}
}

func (s *Server) broadcastLoop() {
	ticker := time.NewTicker(broadcastInterval)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		if len(s.subs) == 0 {
			s.mu.Unlock()
			continue
		}
		subs := make([]*subscriber, 0, len(s.subs))
		for sub := range s.subs {
			subs = append(subs, sub)
		}
		s.mu.Unlock()

		msg := stateMessage{Type: "state", State: s.runner.Snapshot(), ServerTime: time.Now().UnixMilli()}
		for _, sub := range subs {
			if err := sub.writeJSON(msg); err != nil {
				logrus.Debugf("ws broadcast: %v", err)
			}
		}
	}
}
