package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/academic-events/eventhub/cmd/app"
	"github.com/academic-events/eventhub/internal/adapters/config"

	_ "time/tzdata"
)

func main() {
	cfg := config.Get()
	a, err := app.New(cfg)
	if err != nil {
		log.Panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = a.Start(ctx); err != nil {
		log.Panic(err)
	}

	<-ctx.Done()
	a.Close()
}
