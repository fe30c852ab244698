package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/abhisek/rote/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// After the first interrupt, restore the default handler so a second
	// one terminates immediately.
	go func() {
		<-ctx.Done()
		stop()
	}()

	if err := cmd.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
