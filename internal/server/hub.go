package server

import (
	"automation/internal/engine"
	"automation/internal/lobby"
	"automation/internal/protocol"
	"encoding/json"
	"log"
	"sync"
)

// Hub fans one game's events out to its spectators. Events published before
// a spectator joins are replayed to it as a single backlog message.
type Hub struct {
	gameID     string
	table      *lobby.Table
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	incoming   chan IncomingMessage
	publish    chan protocol.Envelope
	quit       chan struct{}
	done       chan struct{}
	finishOnce sync.Once
	stopOnce   sync.Once

	// owned by the Run goroutine
	backlog []json.RawMessage
	over    *protocol.Envelope
}

func NewHub(gameID string, table *lobby.Table) *Hub {
	return &Hub{
		gameID:     gameID,
		table:      table,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan IncomingMessage, 256),
		publish:    make(chan protocol.Envelope, 1024),
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.welcome(client)

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}

		case env := <-h.publish:
			switch env.Type {
			case protocol.MsgEvent:
				h.backlog = append(h.backlog, env.Payload)
			case protocol.MsgGameOver:
				over := env
				h.over = &over
			}
			h.broadcastAll(env)

		case msg := <-h.incoming:
			h.sendError(msg.Client, "spectators cannot send game input")

		case <-h.quit:
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			return
		}
	}
}

// Publish queues an engine event for every spectator. It is an
// engine.Observer.
func (h *Hub) Publish(ev engine.Event) {
	h.enqueue(protocol.MustEnvelope(protocol.MsgEvent, ev))
}

// Finish announces the outcome and marks the game done. Later calls are
// ignored.
func (h *Hub) Finish(result *engine.GameResult, err error) {
	h.finishOnce.Do(func() {
		msg := protocol.GameOver{GameID: h.gameID, Result: result}
		if err != nil {
			msg.Error = err.Error()
		}
		h.enqueue(protocol.MustEnvelope(protocol.MsgGameOver, msg))
		close(h.done)
	})
}

// Done is closed once Finish has been called.
func (h *Hub) Done() <-chan struct{} { return h.done }

// Stop disconnects every spectator and ends Run.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.quit) })
}

func (h *Hub) enqueue(env protocol.Envelope) {
	select {
	case h.publish <- env:
	case <-h.quit:
	}
}

func (h *Hub) welcome(client *Client) {
	seats := h.table.GetSeats()
	info := make([]protocol.SeatInfo, len(seats))
	for i, s := range seats {
		info[i] = protocol.SeatInfo{Name: s.Name, Strategy: s.Strategy}
	}
	client.SendEnvelope(protocol.MustEnvelope(protocol.MsgHello, protocol.Hello{
		GameID: h.gameID,
		Seats:  info,
	}))
	if len(h.backlog) > 0 {
		client.SendEnvelope(protocol.MustEnvelope(protocol.MsgBacklog, protocol.Backlog{
			Events: h.backlog,
		}))
	}
	if h.over != nil {
		client.SendEnvelope(*h.over)
	}
}

func (h *Hub) broadcastAll(env protocol.Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		log.Printf("broadcast marshal error: %v", err)
		return
	}
	for client := range h.clients {
		client.sendRaw(data)
	}
}

func (h *Hub) sendError(client *Client, message string) {
	env := protocol.MustEnvelope(protocol.MsgError, protocol.ErrorMsg{Message: message})
	client.SendEnvelope(env)
}
