package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wagontrail/internal/catalog"
	"wagontrail/internal/config"
	"wagontrail/internal/dice"
	"wagontrail/internal/feed"
	"wagontrail/internal/game"
	"wagontrail/internal/session"
	"wagontrail/internal/trail"
	"wagontrail/internal/web"
)

func main() {
	logger := log.New(os.Stderr, "[TRAIL] ", log.LstdFlags)
	cfg, err := config.ParseConfig(flag.NewFlagSet(os.Args[0], flag.ExitOnError), os.Args[1:])
	if err != nil {
		logger.Fatal(err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal(err)
	}
}

func run(ctx context.Context, cfg config.Config, logger *log.Logger) error {
	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}

	var store session.Store[game.WagonTrain]
	if cfg.StorePath == "" {
		store = session.NewMemoryStore[game.WagonTrain]()
		logger.Println("keeping wagon trains in memory")
	} else {
		db, err := session.OpenSQLite[game.WagonTrain](ctx, cfg.StorePath, "trains")
		if err != nil {
			return err
		}
		defer db.Close()
		store = db
		logger.Printf("storing wagon trains in %s", cfg.StorePath)
	}

	var rng dice.Source = dice.Crypto{}
	if cfg.Seed != 0 {
		rng = dice.NewSeeded(cfg.Seed)
		logger.Printf("dice seeded with %d", cfg.Seed)
	}

	tmpl, err := web.Templates()
	if err != nil {
		return err
	}
	hub := feed.NewHub(logger)
	go hub.Run(ctx)
	engine := trail.New(cat, store, rng, logger)
	engine.Notify = func(c trail.Commit) { hub.Publish(c.Train, c) }
	srv := &web.Server{
		Engine: engine,
		Tmpl:   tmpl,
		Logger: logger,
		Feed:   hub,
	}

	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	logger.Printf("listening on http://localhost%s", cfg.Addr)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}
