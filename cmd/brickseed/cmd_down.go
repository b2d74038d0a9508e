package main

import (
	"github.com/spf13/cobra"

	"brickseed/internal/compose"
)

// downCmd stops the local Formbricks stack
var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Stop Formbricks and remove its containers and volumes",
	RunE:  runDown,
}

func runDown(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	mgr := compose.NewManager(workspacePaths(), compose.Options{
		Logger: logger,
		Out:    cmd.OutOrStdout(),
	})
	return mgr.Down(ctx)
}
