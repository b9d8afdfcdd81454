package server

import (
	"automation/internal/config"
	"automation/internal/engine"
	"automation/internal/engine/strategies"
	"automation/internal/history"
	"automation/internal/lobby"
	"automation/internal/protocol"
	qr "automation/internal/qrcode"
	"automation/internal/sim"
	"automation/internal/transcript"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// DefaultMaxTurns bounds server games when neither the request nor the
// server configuration sets a limit.
const DefaultMaxTurns = 2000

// DefaultRetention is how long a finished game stays watchable.
const DefaultRetention = 10 * time.Minute

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Options configures the game runner behind the handlers.
type Options struct {
	History       *history.Store // nil disables recording
	TranscriptDir string         // "" disables transcripts
	MaxTurns      int
	Retention     time.Duration // 0 means DefaultRetention
}

// Handlers holds HTTP handler dependencies.
type Handlers struct {
	Tables *lobby.Manager
	Port   int
	opts   Options

	mu   sync.Mutex
	hubs map[string]*Hub
	wg   sync.WaitGroup
}

func NewHandlers(port int, opts Options) *Handlers {
	return &Handlers{
		Tables: lobby.NewManager(),
		Port:   port,
		opts:   opts,
		hubs:   make(map[string]*Hub),
	}
}

// Routes registers the API routes on mux.
func (h *Handlers) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/api/run", h.HandleRun)
	mux.HandleFunc("/api/qr", h.HandleQR)
	mux.HandleFunc("/api/history", h.HandleHistory)
	mux.HandleFunc("/ws", h.HandleWS)
}

// HandleRun seats a bot-only table and starts the game in the background.
func (h *Handlers) HandleRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req protocol.RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid run request", http.StatusBadRequest)
		return
	}
	seats, err := lobby.ParseSeats(req.Seats)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	kinds := strategies.Kinds()
	for _, s := range seats {
		if !slices.Contains(kinds, s.Strategy) {
			http.Error(w, fmt.Sprintf("seat %q: strategy %q is not a bot", s.Name, s.Strategy), http.StatusBadRequest)
			return
		}
	}

	id := h.Tables.Create()
	table := h.Tables.Get(id)
	for _, s := range seats {
		if err := table.Join(GenerateSeatID(), s.Name, s.Strategy); err != nil {
			h.Tables.Remove(id)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if err := table.Start(); err != nil {
		h.Tables.Remove(id)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	seed := req.Seed
	if seed == 0 {
		if seed, err = config.NewSeed(); err != nil {
			http.Error(w, "seed generation failed", http.StatusInternalServerError)
			return
		}
	}
	maxTurns := req.MaxTurns
	if maxTurns <= 0 {
		maxTurns = h.opts.MaxTurns
	}
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}

	hub := NewHub(id, table)
	h.mu.Lock()
	h.hubs[id] = hub
	h.mu.Unlock()
	go hub.Run()

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		h.runGame(hub, table.GetSeats(), seed, maxTurns)
	}()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(protocol.RunResponse{
		GameID:   id,
		Seed:     seed,
		WatchURL: qr.WatchURL(r.Host, id),
		QRURL:    fmt.Sprintf("http://%s/api/qr?game=%s", r.Host, id),
	})
}

func (h *Handlers) runGame(hub *Hub, seats []lobby.Seat, seed uint64, maxTurns int) {
	observers := []engine.Observer{hub.Publish}
	var tw *transcript.Writer
	if h.opts.TranscriptDir != "" {
		var err error
		if tw, err = transcript.Create(h.opts.TranscriptDir, hub.gameID); err != nil {
			log.Printf("game %s: transcript: %v", hub.gameID, err)
		} else {
			observers = append(observers, tw.Observer())
		}
	}

	result, err := sim.Run(seats, sim.Options{Seed: seed, MaxTurns: maxTurns, Observers: observers})
	if tw != nil {
		if cerr := tw.Close(); cerr != nil {
			log.Printf("game %s: transcript: %v", hub.gameID, cerr)
		}
	}
	if err != nil {
		log.Printf("game %s aborted: %v", hub.gameID, err)
	} else {
		log.Printf("game %s finished after %d turns, winner %s", hub.gameID, result.Turns, result.Winner())
		if h.opts.History != nil {
			if herr := h.opts.History.Record(context.Background(), hub.gameID, result); herr != nil {
				log.Printf("game %s: history: %v", hub.gameID, herr)
			}
		}
	}
	hub.Finish(result, err)

	retention := h.opts.Retention
	if retention <= 0 {
		retention = DefaultRetention
	}
	time.AfterFunc(retention, func() { h.evict(hub.gameID) })
}

// evict drops a finished game: its spectators are disconnected and its
// backlog is released.
func (h *Handlers) evict(id string) {
	h.mu.Lock()
	hub := h.hubs[id]
	delete(h.hubs, id)
	h.mu.Unlock()
	if hub != nil {
		hub.Stop()
	}
	h.Tables.Remove(id)
}

// HandleQR generates a QR code PNG for watching the game.
func (h *Handlers) HandleQR(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	if gameID == "" {
		http.Error(w, "missing game parameter", http.StatusBadRequest)
		return
	}
	if h.hub(gameID) == nil {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}
	png, err := qr.Generate(qr.WatchURL(r.Host, gameID))
	if err != nil {
		http.Error(w, "QR generation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// HistoryResponse is the body of GET /api/history.
type HistoryResponse struct {
	Games     []history.Game     `json:"games"`
	Standings []history.Standing `json:"standings"`
}

// HandleHistory returns recent games and standings from the ledger.
func (h *Handlers) HandleHistory(w http.ResponseWriter, r *http.Request) {
	if h.opts.History == nil {
		http.Error(w, "history disabled", http.StatusNotFound)
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}
	games, err := h.opts.History.Recent(r.Context(), limit)
	if err != nil {
		log.Printf("history: %v", err)
		http.Error(w, "history query failed", http.StatusInternalServerError)
		return
	}
	standings, err := h.opts.History.Standings(r.Context())
	if err != nil {
		log.Printf("history: %v", err)
		http.Error(w, "history query failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HistoryResponse{Games: games, Standings: standings})
}

// HandleWS attaches a spectator to a game.
func (h *Handlers) HandleWS(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	if gameID == "" {
		http.Error(w, "missing game parameter", http.StatusBadRequest)
		return
	}
	hub := h.hub(gameID)
	if hub == nil {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	client := NewClient(hub, conn, GenerateSeatID())
	select {
	case hub.register <- client:
	case <-hub.quit:
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}

func (h *Handlers) hub(id string) *Hub {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hubs[id]
}

// Wait blocks until every started game has finished.
func (h *Handlers) Wait() { h.wg.Wait() }

// Close stops every hub.
func (h *Handlers) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, hub := range h.hubs {
		hub.Stop()
	}
}
