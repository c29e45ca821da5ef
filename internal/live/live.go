// Package live serves the WebSocket live preview. Every valuate message is
// answered with the stats, price and rating of the submitted design, and the
// last valid preview of a session can be saved through the storage backend.
package live

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	ws "github.com/gorilla/websocket"
	"github.com/modgarage/customizer/internal/dispatcher"
	"github.com/modgarage/customizer/internal/storage"
	"github.com/modgarage/customizer/internal/valuation"
	"github.com/modgarage/customizer/pkg/core"
	"github.com/modgarage/customizer/pkg/streaming"
)

const (
	sendChSize     = 64
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 << 10
	saveTimeout    = 10 * time.Second
)

// Publisher receives design lifecycle events.
type Publisher interface {
	Publish(command string, payload any)
}

// Server upgrades HTTP requests to live preview sessions.
type Server struct {
	store    storage.Backend
	events   Publisher
	logger   *slog.Logger
	upgrader ws.Upgrader
}

// NewServer creates a live preview server. events may be nil.
func NewServer(store storage.Backend, events Publisher, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		store:  store,
		events: events,
		logger: logger,
		upgrader: ws.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", "error", err)
		return
	}

	sess := &session{
		srv:    s,
		conn:   conn,
		sendCh: make(chan []byte, sendChSize),
		done:   make(chan struct{}),
	}
	s.logger.Debug("Live preview session opened", "remote", r.RemoteAddr)

	go sess.writeLoop()
	sess.readLoop()

	s.logger.Debug("Live preview session closed", "remote", r.RemoteAddr)
}

func (s *Server) publish(command string, payload dispatcher.DesignEvent) {
	if s.events != nil {
		s.events.Publish(command, payload)
	}
}

// session is one WebSocket connection with a single write goroutine.
type session struct {
	srv    *Server
	conn   *ws.Conn
	sendCh chan []byte
	done   chan struct{}
	once   sync.Once

	// last valid preview, only touched by the read loop
	last *core.Design
}

func (c *session) close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// writeLoop drains sendCh and keeps the connection alive with pings.
func (c *session) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case <-c.done:
			return
		case data := <-c.sendCh:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.srv.logger.Warn("WebSocket SetWriteDeadline error", "error", err)
				return
			}
			if err := c.conn.WriteMessage(ws.TextMessage, data); err != nil {
				c.srv.logger.Warn("WebSocket write error", "error", err)
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(ws.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				c.srv.logger.Debug("WebSocket ping failed", "error", err)
				return
			}
		}
	}
}

// readLoop handles client messages until the connection fails or closes.
func (c *session) readLoop() {
	defer c.close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if ws.IsUnexpectedCloseError(err, ws.CloseNormalClosure, ws.CloseGoingAway) {
				c.srv.logger.Warn("WebSocket read error", "error", err)
			}
			return
		}

		var env streaming.Envelope
		if err := json.Unmarshal(message, &env); err != nil {
			c.sendError(streaming.CodeBadRequest, "invalid message")
			continue
		}

		switch env.Type {
		case streaming.TypeValuate:
			c.handleValuate(env)
		case streaming.TypeSave:
			c.handleSave(env)
		default:
			c.sendError(streaming.CodeBadRequest, "unknown message type: "+env.Type)
		}
	}
}

func (c *session) handleValuate(env streaming.Envelope) {
	var d core.Design
	if err := env.DecodePayload(&d); err != nil {
		c.sendError(streaming.CodeBadRequest, "invalid vehicle design data")
		return
	}

	v, err := valuation.Valuate(d)
	if err != nil {
		c.sendError(errorCode(err), err.Error())
		return
	}

	preview := d.Clone()
	c.last = &preview
	c.srv.publish(dispatcher.CmdDesignValuated, dispatcher.DesignEvent{Design: preview, Valuation: &v})
	c.send(streaming.TypeValuation, v)
}

func (c *session) handleSave(env streaming.Envelope) {
	if c.last == nil {
		c.sendError(streaming.CodeBadRequest, "no valid preview to save")
		return
	}

	d := c.last.Clone()
	if len(env.Payload) > 0 {
		var p streaming.SavePayload
		if err := env.DecodePayload(&p); err != nil {
			c.sendError(streaming.CodeBadRequest, "invalid save payload")
			return
		}
		if p.Name != "" {
			d.Name = p.Name
		}
	}
	d.ID = ""
	d.CreatedAt, d.UpdatedAt = nil, nil

	if err := valuation.Validate(d); err != nil {
		c.sendError(errorCode(err), err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := c.srv.store.Create(ctx, &d); err != nil {
		c.srv.logger.Error("Failed to save live preview", "error", err)
		c.sendError(streaming.CodeInternal, "failed to save vehicle design")
		return
	}

	c.srv.publish(dispatcher.CmdDesignCreated, dispatcher.DesignEvent{Design: d})
	c.send(streaming.TypeSaved, d)
}

func (c *session) sendError(code, message string) {
	c.send(streaming.TypeError, streaming.ErrorPayload{Message: message, Code: code})
}

// send pushes an envelope to the write loop. Drops if the channel is full.
func (c *session) send(msgType string, payload any) {
	data, err := streaming.MarshalEnvelope(msgType, payload)
	if err != nil {
		c.srv.logger.Error("Failed to encode live preview message", "type", msgType, "error", err)
		return
	}
	select {
	case c.sendCh <- data:
	case <-c.done:
	default:
		c.srv.logger.Warn("WebSocket send channel full, dropping message", "type", msgType)
	}
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, valuation.ErrModelNotFound):
		return streaming.CodeNotFound
	case errors.Is(err, valuation.ErrInvalidDesign):
		return streaming.CodeInvalid
	default:
		return streaming.CodeBadRequest
	}
}
