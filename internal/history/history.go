// Package history keeps a SQLite ledger of finished games.
package history

import (
	"automation/internal/engine"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("game not found")

// timeLayout is fixed width so recorded_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store records completed games. Only final outcomes are stored.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Game is one recorded game with its ranked results.
type Game struct {
	ID         string    `json:"id"`
	Seed       uint64    `json:"seed"`
	Players    []string  `json:"players"` // seating order
	Turns      int       `json:"turns"`
	Winner     string    `json:"winner"`
	RecordedAt time.Time `json:"recorded_at"`
	Results    []Result  `json:"results"`
}

// Result is one participant's row in a recorded game.
type Result struct {
	Rank  int            `json:"rank"`
	Name  string         `json:"name"`
	Score int            `json:"score"`
	Cards map[string]int `json:"cards"`
}

// Standing aggregates every recorded game of one participant name.
type Standing struct {
	Name     string  `json:"name"`
	Games    int     `json:"games"`
	Wins     int     `json:"wins"`
	AvgScore float64 `json:"avg_score"`
}

// Open opens or creates the ledger at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, now: time.Now}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			seed TEXT NOT NULL,
			players TEXT NOT NULL,
			turns INTEGER NOT NULL,
			winner TEXT NOT NULL,
			recorded_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS results (
			game_id TEXT NOT NULL REFERENCES games(id) ON DELETE CASCADE,
			rank INTEGER NOT NULL,
			name TEXT NOT NULL,
			score INTEGER NOT NULL,
			cards TEXT NOT NULL,
			PRIMARY KEY (game_id, rank)
		);`,
		`CREATE INDEX IF NOT EXISTS results_name ON results(name);`,
		`CREATE INDEX IF NOT EXISTS games_recorded_at ON games(recorded_at);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Record stores a finished game under gameID. The players column keeps
// seating order; rank lives in results.
func (s *Store) Record(ctx context.Context, gameID string, r *engine.GameResult) error {
	players := r.Players
	if len(players) == 0 {
		players = make([]string, len(r.Results))
		for i, e := range r.Results {
			players[i] = e.Name
		}
	}
	playersJSON, err := json.Marshal(players)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO games (id, seed, players, turns, winner, recorded_at) VALUES (?, ?, ?, ?, ?, ?)`,
		gameID, strconv.FormatUint(r.Seed, 10), string(playersJSON), r.Turns, r.Winner(),
		s.now().UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("record game %s: %w", gameID, err)
	}
	for i, e := range r.Results {
		cards, err := json.Marshal(cardNames(e.CardCounts()))
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO results (game_id, rank, name, score, cards) VALUES (?, ?, ?, ?, ?)`,
			gameID, i+1, e.Name, e.Score, string(cards))
		if err != nil {
			return fmt.Errorf("record result %s/%s: %w", gameID, e.Name, err)
		}
	}
	return tx.Commit()
}

// Game loads one recorded game.
func (s *Store) Game(ctx context.Context, id string) (*Game, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, seed, players, turns, winner, recorded_at FROM games WHERE id = ?`, id)
	g, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	if g.Results, err = s.results(ctx, id); err != nil {
		return nil, err
	}
	return g, nil
}

// Recent returns up to limit games, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Game, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, seed, players, turns, winner, recorded_at FROM games
		 ORDER BY recorded_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	var out []Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, *g)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	// A single connection is open, so results are loaded after rows closes.
	for i := range out {
		if out[i].Results, err = s.results(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Standings ranks participant names by wins, then average score.
func (s *Store) Standings(ctx context.Context) ([]Standing, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, COUNT(*), SUM(CASE WHEN rank = 1 THEN 1 ELSE 0 END), AVG(score)
		FROM results
		GROUP BY name
		ORDER BY 3 DESC, 4 DESC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Standing
	for rows.Next() {
		var st Standing
		if err := rows.Scan(&st.Name, &st.Games, &st.Wins, &st.AvgScore); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *Store) results(ctx context.Context, gameID string) ([]Result, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT rank, name, score, cards FROM results WHERE game_id = ? ORDER BY rank`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var (
			r     Result
			cards string
		)
		if err := rows.Scan(&r.Rank, &r.Name, &r.Score, &cards); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(cards), &r.Cards); err != nil {
			return nil, fmt.Errorf("game %s rank %d cards: %w", gameID, r.Rank, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGame(row scanner) (*Game, error) {
	var (
		g        Game
		seed     string
		players  string
		recorded string
	)
	if err := row.Scan(&g.ID, &seed, &players, &g.Turns, &g.Winner, &recorded); err != nil {
		return nil, err
	}
	var err error
	if g.Seed, err = strconv.ParseUint(seed, 10, 64); err != nil {
		return nil, fmt.Errorf("game %s seed: %w", g.ID, err)
	}
	if err := json.Unmarshal([]byte(players), &g.Players); err != nil {
		return nil, fmt.Errorf("game %s players: %w", g.ID, err)
	}
	if g.RecordedAt, err = time.Parse(timeLayout, recorded); err != nil {
		return nil, fmt.Errorf("game %s recorded_at: %w", g.ID, err)
	}
	return &g, nil
}

func cardNames(counts map[engine.Card]int) map[string]int {
	out := make(map[string]int, len(counts))
	for c, n := range counts {
		out[c.Name()] = n
	}
	return out
}
