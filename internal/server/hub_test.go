package server

import (
	"automation/internal/engine"
	"automation/internal/lobby"
	"automation/internal/protocol"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func testClient(h *Hub) *Client {
	return &Client{hub: h, send: make(chan []byte, 256), ID: "test"}
}

func readEnvelope(t *testing.T, c *Client) protocol.Envelope {
	t.Helper()
	select {
	case data, ok := <-c.send:
		if !ok {
			t.Fatal("send channel closed")
		}
		var env protocol.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			t.Fatalf("bad envelope: %v", err)
		}
		return env
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a message")
	}
	return protocol.Envelope{}
}

// drain reads until game_over and returns how many events arrived.
func drain(t *testing.T, c *Client) (int, protocol.GameOver) {
	t.Helper()
	events := 0
	for {
		env := readEnvelope(t, c)
		switch env.Type {
		case protocol.MsgBacklog:
			var b protocol.Backlog
			if err := json.Unmarshal(env.Payload, &b); err != nil {
				t.Fatal(err)
			}
			events += len(b.Events)
		case protocol.MsgEvent:
			events++
		case protocol.MsgGameOver:
			var over protocol.GameOver
			if err := json.Unmarshal(env.Payload, &over); err != nil {
				t.Fatal(err)
			}
			return events, over
		}
	}
}

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	table := lobby.NewTable("g1")
	table.Join("a", "Alice", "bigmoney")
	h := NewHub("g1", table)
	go h.Run()
	t.Cleanup(h.Stop)
	return h
}

func TestHubLateSpectatorGetsBacklog(t *testing.T) {
	h := newTestHub(t)
	for i := 0; i < 5; i++ {
		h.Publish(engine.Event{Type: engine.EventTurnStart, Turn: i + 1, Player: "Alice"})
	}
	h.Finish(&engine.GameResult{Seed: 1, Turns: 5}, nil)

	c := testClient(h)
	h.register <- c
	hello := readEnvelope(t, c)
	if hello.Type != protocol.MsgHello {
		t.Fatalf("first message %s, want hello", hello.Type)
	}
	var hm protocol.Hello
	json.Unmarshal(hello.Payload, &hm)
	if hm.GameID != "g1" || len(hm.Seats) != 1 || hm.Seats[0].Name != "Alice" {
		t.Fatalf("hello: %+v", hm)
	}

	events, over := drain(t, c)
	if events != 5 {
		t.Fatalf("got %d events, want 5", events)
	}
	if over.Error != "" || over.Result == nil || over.Result.Turns != 5 {
		t.Fatalf("game over: %+v", over)
	}
}

func TestHubLiveSpectator(t *testing.T) {
	h := newTestHub(t)
	c := testClient(h)
	h.register <- c
	readEnvelope(t, c) // hello

	h.Publish(engine.Event{Type: engine.EventGameStart})
	h.Finish(nil, errors.New("boom"))
	h.Finish(nil, nil)

	events, over := drain(t, c)
	if events != 1 {
		t.Fatalf("got %d events, want 1", events)
	}
	if over.Error != "boom" {
		t.Fatalf("error: %q", over.Error)
	}
	select {
	case <-h.Done():
	default:
		t.Fatal("Done not closed after Finish")
	}
}

func TestHubRejectsInput(t *testing.T) {
	h := newTestHub(t)
	c := testClient(h)
	h.register <- c
	readEnvelope(t, c)

	h.incoming <- IncomingMessage{Client: c, Envelope: protocol.Envelope{Type: "buy"}}
	if env := readEnvelope(t, c); env.Type != protocol.MsgError {
		t.Fatalf("got %s, want error", env.Type)
	}
}

func TestHubStopClosesClients(t *testing.T) {
	table := lobby.NewTable("g")
	h := NewHub("g", table)
	go h.Run()
	c := testClient(h)
	h.register <- c
	readEnvelope(t, c)
	h.Stop()
	h.Stop()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-c.send:
			if !ok {
				h.Publish(engine.Event{Type: engine.EventGameStart}) // must not block
				return
			}
		case <-deadline:
			t.Fatal("client channel not closed")
		}
	}
}
