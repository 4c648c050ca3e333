package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	app "github.com/aitic/ai-tic-backend/internal"
	"github.com/aitic/ai-tic-backend/internal/config"
)

// main - loads the configuration, builds the logger and runs the application.
func main() {
	configPath := flag.String("config", "config.yml", "path to the configuration file")
	flag.Parse()

	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	conf := config.MustLoad(*configPath)
	logger := initLogger(conf)

	if err := app.RunApp(logger, conf); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

func initLogger(conf *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if conf.LogLevel == "debug" {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
