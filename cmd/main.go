package main

import (
	"context"
	"os/signal"
	"syscall"

	// Встроенная база зон: резолвер таймзон должен работать и в scratch-контейнере
	_ "time/tzdata"

	"github.com/zebulonh89-dotcom/newastro-backend/internal/app"
)

const appName = "natal_api"

func main() {
	cfg, err := app.NewEnvConfig(appName)
	if err != nil {
		panic(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app := app.New(appName, cfg)

	err1 := app.Run(ctx)
	if err1 != nil {
		panic(err1)
	}
}
