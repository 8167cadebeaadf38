package main

import (
	"context"
	"log/slog"
	"os"

	"bankmetrics/internal/app"
	"bankmetrics/internal/infrastructure"
)

func main() {
	application, err := app.NewApplication()
	if err != nil {
		slog.Error("Failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	if err := application.Run(context.Background()); err != nil {
		application.Logger.Error("Application error", slog.String("error", err.Error()))
		infrastructure.CloseLogFile()
		os.Exit(1)
	}
}
