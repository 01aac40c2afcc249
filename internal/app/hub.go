// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package app

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Dashboards are served from other hosts.
	},
}

const writeWait = time.Second

// hub pushes every message to all connected websocket clients.
type hub struct {
	mu      sync.Mutex
	sockets map[*websocket.Conn]struct{}
}

func newHub() *hub {
	return &hub{sockets: map[*websocket.Conn]struct{}{}}
}

// ServeHTTP upgrades the request and keeps the socket until the client
// closes it.
func (h *hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	h.mu.Lock()
	h.sockets[conn] = struct{}{}
	h.mu.Unlock()

	// Incoming messages are ignored; reading processes the close frame.
	for {
		if _, _, err := conn.NextReader(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("websocket error: %v", err)
			}
			break
		}
	}
	h.remove(conn)
}

// Clients returns the number of connected sockets.
func (h *hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sockets)
}

// Broadcast sends v as JSON. Sockets that cannot be written are dropped.
func (h *hub) Broadcast(v interface{}) error {
	msg, err := json.Marshal(v)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.sockets {
		err := conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err == nil {
			err = conn.WriteMessage(websocket.TextMessage, msg)
		}
		if err != nil {
			delete(h.sockets, conn)
			conn.Close()
		}
	}
	return nil
}

func (h *hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.sockets[conn]; ok {
		delete(h.sockets, conn)
		conn.Close()
	}
}

// Close disconnects every client.
func (h *hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.sockets {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
		conn.Close()
		delete(h.sockets, conn)
	}
}
