package main

import (
	"context"
	"log"

	feedadapter "geoforge/internal/adapter/feed"
	httpadapter "geoforge/internal/adapter/http"
	metricsinmem "geoforge/internal/adapter/metrics/inmemory"
	"geoforge/internal/adapter/procgen"
	gormrepo "geoforge/internal/adapter/repo/gorm"
	"geoforge/internal/adapter/repo/memory"
	sqliterepo "geoforge/internal/adapter/repo/sqlite"
	"geoforge/internal/app/engine"
	"geoforge/internal/app/movement"
	"geoforge/internal/app/ports"
	"geoforge/internal/app/replay"
	"geoforge/internal/app/status"
	"geoforge/internal/config"
	"geoforge/internal/domain/game"
	"geoforge/internal/domain/grid"

	"github.com/cloudwego/hertz/pkg/app/server"
)

func main() {
	cfg, err := config.ParseEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	tuning, err := config.LoadTuning(cfg.TuningPath)
	if err != nil {
		log.Printf("tuning: %v (using defaults)", err)
	}

	snapshots, events, tx := mustBuildRepos(cfg)
	kpiRecorder := metricsinmem.NewRecorder()

	g := grid.Grid{CellSize: tuning.CellSizeDegrees}
	eng := engine.New(engine.Config{
		SessionID:         cfg.SessionID,
		Grid:              g,
		Generator:         buildGenerator(tuning),
		InteractionRadius: tuning.InteractionRadius,
		ViewportMargin:    tuning.ViewportMarginCell,
		WinTarget:         game.TokenValue(tuning.WinTarget),
		DefaultStart:      grid.Cell{Row: tuning.StartRow, Col: tuning.StartCol},
		DefaultMode:       game.ModeManual,
	}, engine.Deps{
		Snapshots: snapshots,
		Events:    events,
		Tx:        tx,
		Metrics:   kpiRecorder,
	})
	if eng.Restore(context.Background()) {
		log.Printf("restored session %s", cfg.SessionID)
	}

	queue := feedadapter.NewQueue()
	moveTo := func(c grid.Cell) { eng.MoveTo(context.Background(), c) }
	controller := movement.NewController(
		movement.NewManual(eng.Player, moveTo),
		movement.NewTracked(queue, g, moveTo),
	)
	if err := controller.Switch(eng.Mode()); err != nil {
		log.Printf("movement: %v (falling back to manual)", err)
		_ = eng.SetMode(context.Background(), game.ModeManual)
	}

	h := httpadapter.Handler{
		Engine:   eng,
		Movement: controller,
		Feed:     queue,
		StatusUC: status.NewUseCase(eng),
		ReplayUC: replay.NewUseCase(events),
		KPI:      kpiRecorder,
	}

	s := server.Default(server.WithHostPorts(cfg.Addr))
	h.RegisterRoutes(s)

	log.Printf("geoforge server listening on %s (session %s)", cfg.Addr, cfg.SessionID)
	s.Spin()
}

func mustBuildRepos(cfg config.Config) (ports.SnapshotRepository, ports.EventRepository, ports.TxManager) {
	if cfg.DBDSN != "" {
		db, err := gormrepo.OpenPostgres(cfg.DBDSN)
		if err != nil {
			log.Fatalf("open postgres: %v", err)
		}
		if err := gormrepo.ApplyMigrations(context.Background(), db, cfg.MigrationsDir); err != nil {
			log.Fatalf("apply migrations: %v", err)
		}
		return gormrepo.NewSnapshotRepo(db), gormrepo.NewEventRepo(db), gormrepo.NewTxManager(db)
	}

	if cfg.SQLitePath != "" {
		store, err := sqliterepo.Open(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("open sqlite: %v", err)
		}
		return store, store, store
	}

	log.Println("no database configured, using in-memory store")
	store := memory.NewStore()
	return memory.NewSnapshotRepo(store), memory.NewEventRepo(store), memory.NewTxManager()
}

func buildGenerator(t config.Tuning) game.Generator {
	var roller game.Roller
	switch t.Generator {
	case "noise":
		roller = procgen.NewNoiseRoller(t.NoiseSeed, t.NoiseFrequency)
	default:
		roller = procgen.NewHashRoller(t.GeneratorSalt)
	}
	return game.Generator{Roller: roller, SpawnChance: t.SpawnChance}
}
