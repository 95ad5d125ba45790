package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/preston-bernstein/cfp-rankings-service/internal/cli"
)

const appVersion = "dev"

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand(appVersion).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "cfpctl:", err)
		stop()
		os.Exit(1)
	}
}
