package main

import (
	"automation/internal/config"
	"automation/internal/engine"
	"automation/internal/engine/strategies"
	"automation/internal/history"
	"automation/internal/lobby"
	qr "automation/internal/qrcode"
	"automation/internal/server"
	"automation/internal/sim"
	"automation/internal/transcript"
	"context"
	"embed"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
)

//go:embed web/static
var static embed.FS

func main() {
	log.SetPrefix("automation: ")
	cfg, err := config.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var store *history.Store
	if cfg.HistoryDB != "" {
		if store, err = history.Open(cfg.HistoryDB); err != nil {
			log.Fatalf("history: %v", err)
		}
		defer store.Close()
	}

	if cfg.Serve {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if code, err := qr.Terminal(fmt.Sprintf("http://localhost:%d/", cfg.Port)); err == nil {
			fmt.Print(code)
		}
		srv := server.New(cfg.Port, static, server.Options{
			History:       store,
			TranscriptDir: cfg.TranscriptDir,
			MaxTurns:      cfg.MaxTurns,
			Retention:     cfg.Retention,
		})
		if err := srv.Start(ctx); err != nil {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	if err := play(cfg, store, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("%v", err)
	}
}

// play runs cfg.Games local games with consecutive seeds and prints each
// ranking to out.
func play(cfg config.Config, store *history.Store, in io.Reader, out io.Writer) error {
	seats, err := lobby.ParseSeats(cfg.Seats)
	if err != nil {
		return err
	}
	var console engine.DecisionMaker
	for _, s := range seats {
		if s.Strategy == sim.ConsoleStrategy {
			console = strategies.NewConsole(in, out)
			break
		}
	}

	tables := lobby.NewManager()
	wins := make(map[string]int)
	for i := 0; i < cfg.Games; i++ {
		id := tables.Create()
		table := tables.Get(id)
		for _, s := range seats {
			if err := table.Join(s.ID, s.Name, s.Strategy); err != nil {
				return err
			}
		}
		if err := table.Start(); err != nil {
			return err
		}

		seed := cfg.Seed + uint64(i)
		result, err := playOne(cfg, id, table.GetSeats(), seed, console)
		if err != nil {
			return fmt.Errorf("game %s (seed %d): %w", id, seed, err)
		}
		if store != nil {
			if err := store.Record(context.Background(), id, result); err != nil {
				return err
			}
		}
		wins[result.Winner()]++
		printResult(out, id, result)
		tables.Remove(id)
	}

	if cfg.Games > 1 {
		fmt.Fprintf(out, "\nWins over %d games:\n", cfg.Games)
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		for _, s := range seats {
			fmt.Fprintf(tw, "  %s\t%d\n", s.Name, wins[s.Name])
		}
		tw.Flush()
	}
	return nil
}

func playOne(cfg config.Config, id string, seats []lobby.Seat, seed uint64, console engine.DecisionMaker) (*engine.GameResult, error) {
	opts := sim.Options{Seed: seed, MaxTurns: cfg.MaxTurns, Console: console}
	var tw *transcript.Writer
	if cfg.TranscriptDir != "" {
		var err error
		if tw, err = transcript.Create(cfg.TranscriptDir, id); err != nil {
			return nil, err
		}
		opts.Observers = append(opts.Observers, tw.Observer())
	}

	result, err := sim.Run(seats, opts)
	if tw != nil {
		if cerr := tw.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("transcript: %w", cerr)
		}
	}
	return result, err
}

func printResult(out io.Writer, id string, r *engine.GameResult) {
	fmt.Fprintf(out, "\nGame %s (seed %d) finished after %d turns\n", id, r.Seed, r.Turns)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  #\tName\tScore\tCards")
	for i, e := range r.Results {
		fmt.Fprintf(tw, "  %d\t%s\t%d\t%s\n", i+1, e.Name, e.Score, describeCards(e.CardCounts()))
	}
	tw.Flush()
	if r.Tied() {
		fmt.Fprintln(out, "  (tie on top score; earlier seat ranks first)")
	}
}

func describeCards(counts map[engine.Card]int) string {
	s := ""
	for _, c := range engine.Cards() {
		if n := counts[c]; n > 0 {
			if s != "" {
				s += ", "
			}
			s += fmt.Sprintf("%dx %s", n, c)
		}
	}
	return s
}
