package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"sync"

	"github.com/HackhimTech/ticketapp/internal/env"
	"github.com/HackhimTech/ticketapp/internal/storage"
	"github.com/HackhimTech/ticketapp/internal/version"
)

var _cfgFile = flag.String("cfg", "", "path to config file")

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	err := run(logger)
	if err != nil {
		trace := string(debug.Stack())
		logger.Error(err.Error(), "trace", trace)
		os.Exit(1)
	}
}

type config struct {
	httpHost string
	httpPort int
	storage  struct {
		dir string
	}
}

type application struct {
	config config
	store  *storage.Storage
	logger *slog.Logger
	wg     sync.WaitGroup
}

func run(logger *slog.Logger) error {
	var cfg config

	showVersion := flag.Bool("version", false, "display version and exit")

	flag.Parse()

	if *showVersion {
		fmt.Printf("version: %s\n", version.Get())
		return nil
	}

	if *_cfgFile != "" {
		err := env.Load(*_cfgFile)
		if err != nil {
			return err
		}
	}

	cfg.httpHost = env.GetString("HTTP_HOST", "localhost")
	cfg.httpPort = env.GetInt("HTTP_PORT", 8080)
	cfg.storage.dir = env.GetString("STORAGE_DIR", "storage")

	store, err := storage.New(cfg.storage.dir)
	if err != nil {
		return err
	}

	app := &application{
		config: cfg,
		store:  store,
		logger: logger,
	}

	return app.serveHTTP()
}
