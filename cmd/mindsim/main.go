// Command mindsim runs Jessica, an autonomous resident of a small
// generated city, and serves her state over HTTP.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Cheetoyumyum/Project-Jessica/internal/agent"
	"github.com/Cheetoyumyum/Project-Jessica/internal/api"
	"github.com/Cheetoyumyum/Project-Jessica/internal/entropy"
	"github.com/Cheetoyumyum/Project-Jessica/internal/mind"
	"github.com/Cheetoyumyum/Project-Jessica/internal/oracle"
	"github.com/Cheetoyumyum/Project-Jessica/internal/persistence"
	"github.com/Cheetoyumyum/Project-Jessica/internal/world"
)

func main() {
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded .env")
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(),
	}))
	slog.SetDefault(logger)

	name := envOr("AGENT_NAME", "Jessica")
	dbPath := envOr("DB_PATH", "data/jessica.db")
	zonesPath := os.Getenv("ZONES_PATH")
	apiPort := envInt("API_PORT", 8080)
	seed := int64(envInt("WORLD_SEED", 42))
	beatInterval := time.Duration(envInt("BEAT_MS", 1000)) * time.Millisecond

	slog.Info("mindsim starting", "name", name, "db", dbPath, "port", apiPort)

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll("data", 0755)
	db, err := persistence.Open(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// ── Load or Create State ─────────────────────────────────────────
	var a *agent.Agent
	var w *world.World

	if db.HasState() {
		slog.Info("found saved state, loading...")
		a, err = db.LoadAgent()
		if err != nil {
			slog.Error("failed to load agent", "error", err)
			os.Exit(1)
		}
		w, err = db.LoadWorld(seed)
		if err != nil {
			slog.Error("failed to load world", "error", err)
			os.Exit(1)
		}
		slog.Info("state restored", "locations", len(w.Grid), "mood", a.Affect.Mood.Primary)
	} else {
		slog.Info("no saved state, starting fresh")
		a = agent.New(name)
		w = world.Default(seed)
	}

	// ── Zones ────────────────────────────────────────────────────────
	if zonesPath != "" {
		zones, err := world.LoadZones(zonesPath)
		if err != nil {
			slog.Error("failed to load zones", "path", zonesPath, "error", err)
			os.Exit(1)
		}
		w.Zones = zones
		slog.Info("zones loaded", "path", zonesPath, "count", len(zones))
	} else {
		w.Zones = world.DefaultZones()
	}

	// ── Oracle ───────────────────────────────────────────────────────
	client, err := oracle.NewClient(context.Background(),
		os.Getenv("GEMINI_API_KEY"), os.Getenv("GEMINI_MODEL"))
	if err != nil {
		slog.Error("failed to create oracle client", "error", err)
		os.Exit(1)
	}
	var cog oracle.Cognition
	if client.Enabled() {
		defer client.Close()
		cog = client
		w.Gen = client
		slog.Info("oracle enabled")
	} else {
		slog.Warn("GEMINI_API_KEY not set; running on reflexes only")
	}

	// ── Mind ─────────────────────────────────────────────────────────
	m := mind.New(a, w, cog, entropy.New())

	if rows, err := db.RecentEvents(100); err == nil && len(rows) > 0 {
		m.PreloadEvents(eventsFromRows(rows))
	}

	// A save already in flight means this beat's save is skipped, not
	// queued behind it.
	var saveMu sync.Mutex
	m.Save = func(beat int64, fresh []mind.Event) error {
		if !saveMu.TryLock() {
			return nil
		}
		defer saveMu.Unlock()
		if err := db.AppendEvents(eventRows(fresh)); err != nil {
			return err
		}
		return db.SaveAll(a, w, beat)
	}

	// ── HTTP API ─────────────────────────────────────────────────────
	srv := &api.Server{Mind: m, Port: apiPort}
	srv.Start()

	// ── Run ──────────────────────────────────────────────────────────
	hb := mind.NewHeartbeat(m, beatInterval)
	go hb.Run()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	slog.Info("shutting down")

	hb.Stop()
	saveMu.Lock()
	if err := db.AppendEvents(eventRows(m.DrainEvents())); err != nil {
		slog.Error("final event flush failed", "error", err)
	}
	if err := db.SaveAll(a, w, m.Beat()); err != nil {
		slog.Error("final save failed", "error", err)
	}
	saveMu.Unlock()
	slog.Info("goodnight")
}

func eventRows(evs []mind.Event) []persistence.EventRow {
	rows := make([]persistence.EventRow, len(evs))
	for i, ev := range evs {
		rows[i] = persistence.EventRow{
			Beat: ev.Beat,
			At:   ev.At.UTC().Format(time.RFC3339),
			Kind: ev.Kind,
			Text: ev.Text,
		}
	}
	return rows
}

func eventsFromRows(rows []persistence.EventRow) []mind.Event {
	evs := make([]mind.Event, len(rows))
	for i, r := range rows {
		at, _ := time.Parse(time.RFC3339, r.At)
		evs[i] = mind.Event{Beat: r.Beat, At: at, Kind: r.Kind, Text: r.Text}
	}
	return evs
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func logLevel() slog.Level {
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
