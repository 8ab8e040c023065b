package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andrewmao33/polybot/config"
	"github.com/andrewmao33/polybot/internal/adapters/binance"
	"github.com/andrewmao33/polybot/internal/adapters/exec"
	"github.com/andrewmao33/polybot/internal/adapters/notify"
	"github.com/andrewmao33/polybot/internal/adapters/polymarket"
	"github.com/andrewmao33/polybot/internal/adapters/storage"
	"github.com/andrewmao33/polybot/internal/application/engine"
	"github.com/andrewmao33/polybot/internal/domain"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	duration := flag.String("duration", "", "market duration: 5m|15m (overrides config)")
	simulateFills := flag.Bool("simulate-fills", false, "simulate immediate fills for rebalance takes")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	if *duration != "" {
		cfg.Maker.Duration = *duration
	}
	setupLogger(cfg.Log)

	strategyCfg := cfg.Strategy()

	slog.Info("polybot maker starting",
		"config", *configPath,
		"duration", cfg.Maker.Duration,
		"margin_ticks", cfg.Maker.MarginTicks,
		"max_position", cfg.Maker.MaxPosition,
		"simulate_fills", *simulateFills,
	)

	journal, err := storage.NewSQLiteJournal(cfg.Storage.DSN)
	if err != nil {
		slog.Error("failed to open journal", "err", err, "dsn", cfg.Storage.DSN)
		os.Exit(1)
	}
	defer journal.Close()

	// Todos los productores comparten el mismo canal; el engine es el
	// único consumidor.
	events := make(chan domain.Event, cfg.Maker.EventBuffer)

	gamma := polymarket.NewClient(cfg.API.GammaBase)
	bookFeed := polymarket.NewBookFeed(cfg.API.MarketWSURL, "", "", events)
	priceFeed := binance.NewPriceFeed(cfg.API.BinanceWSURL, events)

	var fillEvents chan<- domain.Event
	if *simulateFills {
		fillEvents = events
	}
	executor := exec.NewPaperExecutor(fillEvents)

	e := engine.New(events, executor, gamma, bookFeed, journal, notify.NewConsole(), strategyCfg)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		if err := bookFeed.Run(ctx); err != nil && ctx.Err() == nil {
			slog.Error("book feed exited", "err", err)
		}
	}()
	go func() {
		if err := priceFeed.Run(ctx); err != nil && ctx.Err() == nil {
			slog.Error("price feed exited", "err", err)
		}
	}()

	// Latido de 1s: rollover, status y refresco de tamaños por tiempo.
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case at := <-ticker.C:
				select {
				case events <- domain.Tick{At: at}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	// Señal del SO → evento Shutdown; el engine cancela órdenes y sale.
	// El engine corre con un contexto propio para que el CancelAll del
	// apagado no llegue ya cancelado.
	go func() {
		<-ctx.Done()
		events <- domain.Shutdown{}
	}()

	if err := e.Run(context.Background()); err != nil {
		slog.Error("engine exited with error", "err", err)
		os.Exit(1)
	}

	slog.Info("polybot maker stopped cleanly")
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
