package seatfeed

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 1024
	sendBuffer = 16
)

const EventSeatsUpdated = "seats_updated"

// Event is pushed to every subscriber of a flight.
type Event struct {
	Type             string `json:"type"`
	FlightID         int64  `json:"flight_id"`
	TicketsAvailable int    `json:"tickets_available"`
}

// client is a single websocket subscriber of one flight.
type client struct {
	flightID int64
	conn     *websocket.Conn
	send     chan []byte
}

// Hub fans seat availability events out to websocket subscribers, grouped by flight.
type Hub struct {
	mu      sync.RWMutex
	flights map[int64]map[*client]struct{}
	closed  bool
}

func NewHub() *Hub {
	return &Hub{
		flights: make(map[int64]map[*client]struct{}),
	}
}

// register adds the client and queues its first message under the same lock.
func (h *Hub) register(c *client, first []byte) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	if first != nil {
		c.send <- first
	}
	subs, ok := h.flights[c.flightID]
	if !ok {
		subs = make(map[*client]struct{})
		h.flights[c.flightID] = subs
	}
	subs[c] = struct{}{}
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.flights[c.flightID]
	if !ok {
		return
	}
	if _, ok := subs[c]; !ok {
		return
	}
	delete(subs, c)
	close(c.send)
	if len(subs) == 0 {
		delete(h.flights, c.flightID)
	}
}

// Broadcast sends the event to all subscribers of its flight.
// Subscribers whose buffer is full miss the event.
func (h *Hub) Broadcast(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.flights[event.FlightID] {
		select {
		case c.send <- data:
		default:
		}
	}
}

// Subscribers returns the number of live connections for a flight.
func (h *Hub) Subscribers(flightID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.flights[flightID])
}

// ServeWS registers the connection, queues the initial snapshot and blocks until the client leaves.
func (h *Hub) ServeWS(conn *websocket.Conn, flightID int64, snapshot Event) {
	c := &client{
		flightID: flightID,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
	}
	first, _ := json.Marshal(snapshot)
	if !h.register(c, first) {
		_ = conn.Close()
		return
	}

	go h.writePump(c)
	h.readPump(c)
}

// Close disconnects every subscriber; later ServeWS calls are rejected.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for id, subs := range h.flights {
		for c := range subs {
			close(c.send)
		}
		delete(h.flights, id)
	}
}

// readPump only drains control frames; the feed is server-to-client.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
