package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/coder/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed between reads from the peer.
	readWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than readWait.
	pingPeriod = (readWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

// ReloadMessage tells connected browsers the content set changed and the
// page should refetch.
type ReloadMessage struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

// broadcastReload queues a content_reload notification for all clients.
func (s *Server) broadcastReload() {
	msg, err := json.Marshal(ReloadMessage{
		Type:      "content_reload",
		Timestamp: time.Now(),
	})
	if err != nil {
		return
	}
	select {
	case s.broadcast <- msg:
	default:
		// Hub backlogged; clients will catch the next reload.
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if !s.checkOrigin(r) {
		http.Error(w, "Origin not allowed", http.StatusForbidden)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // origin validated above against config
	})
	if err != nil {
		s.logger.Warn(r.Context(), err, "websocket upgrade failed")
		return
	}

	client := &Client{
		conn:   conn,
		send:   make(chan []byte, 16),
		server: s,
	}

	go client.writePump()
	go client.readPump()

	s.register <- client
}

// checkOrigin validates the request origin against the configured allowed
// origins plus the server's own host.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return false
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if originURL.Scheme != "http" && originURL.Scheme != "https" {
		return false
	}

	if s.isAllowedOrigin(origin) {
		return true
	}

	for _, host := range []string{
		r.Host,
		s.httpAddr(),
	} {
		if originURL.Host == host {
			return true
		}
	}

	return s.config.Server.Environment == "development" &&
		(originURL.Hostname() == "localhost" || originURL.Hostname() == "127.0.0.1")
}

func (s *Server) httpAddr() string {
	s.serverMutex.RLock()
	defer s.serverMutex.RUnlock()
	if s.httpServer != nil {
		return s.httpServer.Addr
	}
	return ""
}

// runHub owns the client set: registrations, departures, and fan-out.
func (s *Server) runHub(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case client := <-s.register:
			s.clientsMutex.Lock()
			s.clients[client.conn] = client
			count := len(s.clients)
			s.clientsMutex.Unlock()
			s.logger.Debug(ctx, "reload client connected", "total", count)

		case conn := <-s.unregister:
			s.clientsMutex.Lock()
			if client, ok := s.clients[conn]; ok {
				delete(s.clients, conn)
				close(client.send)
				conn.Close(websocket.StatusNormalClosure, "")
			}
			count := len(s.clients)
			s.clientsMutex.Unlock()
			s.logger.Debug(ctx, "reload client disconnected", "total", count)

		case message := <-s.broadcast:
			s.clientsMutex.RLock()
			var stalled []*websocket.Conn
			for conn, client := range s.clients {
				select {
				case client.send <- message:
				default:
					stalled = append(stalled, conn)
				}
			}
			s.clientsMutex.RUnlock()

			// Drop clients that stopped draining their queue.
			if len(stalled) > 0 {
				s.clientsMutex.Lock()
				for _, conn := range stalled {
					if client, ok := s.clients[conn]; ok {
						delete(s.clients, conn)
						close(client.send)
						conn.Close(websocket.StatusNormalClosure, "")
					}
				}
				s.clientsMutex.Unlock()
			}
		}
	}
}

// readPump drains the connection so pings are answered and closure is
// noticed; clients never send meaningful data on this channel.
func (c *Client) readPump() {
	defer func() {
		c.server.unregister <- c.conn
	}()

	c.conn.SetReadLimit(maxMessageSize)

	ctx := context.Background()
	for {
		readCtx, cancel := context.WithTimeout(ctx, readWait)
		_, _, err := c.conn.Read(readCtx)
		cancel()
		if err != nil {
			return
		}
	}
}

// writePump pushes queued messages and keepalive pings to the peer.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	ctx := context.Background()
	for {
		select {
		case message, ok := <-c.send:
			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			if !ok {
				cancel()
				return
			}
			err := c.conn.Write(writeCtx, websocket.MessageText, message)
			cancel()
			if err != nil {
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}
		}
	}
}
