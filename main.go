package main

import (
	"os"

	"github.com/nexus/workspace/internal/commands"
	"github.com/nexus/workspace/internal/logging"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		logging.Logger.WithError(err).Error("nexus failed")
		os.Exit(1)
	}
}
