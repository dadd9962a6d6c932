package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}
	config_file := os.Getenv("PLANNER_CONFIG")
	if config_file == "" {
		config_file = "./config.yaml"
	}

	config, err := ReadConfig(config_file)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	if addr := os.Getenv("PLANNER_ADDRESS"); addr != "" {
		config.Server.Address = addr
	}
	slog.SetDefault(slog.New(NewLogHandler(os.Stderr, &slog.HandlerOptions{Level: config.Level()})))

	manager, err := NewMapManager(config)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}

	switch config.Mode {
	case SERVER:
		err = RunServer(config.Server.Address, manager)
	default:
		m := manager.GetMap("").Value
		err = NewConsole(m, os.Stdin, os.Stdout).Run()
	}
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func NewRouter(manager *MapManager) *mux.Router {
	app := mux.NewRouter()
	NewRoutingService(manager).Register(app)
	return app
}

// Serves the api until SIGINT or SIGTERM.
func RunServer(address string, manager *MapManager) error {
	server := &http.Server{
		Addr:              address,
		Handler:           NewRouter(manager),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdown_ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdown_ctx)
	}()

	slog.Info("Server listening", "address", address)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	slog.Info("Server stopped")
	return nil
}
