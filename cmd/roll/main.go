package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	rollcmd "github.com/MavethGH/dice-irae/internal/cmd/roll"
	"github.com/MavethGH/dice-irae/internal/platform/config"
)

func main() {
	cfg, err := rollcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.ExitWithCode(config.ExitUsage, "parse flags: %v", err)
	}
	log.SetPrefix("[ROLL] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rollcmd.Run(ctx, cfg, os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, rollcmd.ErrRollsFailed) {
			os.Exit(config.ExitFailure)
		}
		config.Exitf("roll: %v", err)
	}
}
