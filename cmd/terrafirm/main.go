package main

import (
	"errors"
	"os"

	"github.com/terrafirm-io/terrafirm/internal/cli"
	"github.com/terrafirm-io/terrafirm/internal/logging"
)

// main is the entry point for the terrafirm CLI binary.
func main() {
	logger := logging.NewLogger(os.Stderr, logging.LevelInfo)
	if err := cli.Execute(os.Args[1:], logger); err != nil {
		var insufficient *cli.InsufficientArgumentsError
		if errors.As(err, &insufficient) {
			// Help was already printed by the command.
			os.Exit(2)
		}
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}
