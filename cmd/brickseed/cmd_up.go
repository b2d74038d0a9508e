package main

import (
	"github.com/spf13/cobra"

	"brickseed/internal/compose"
)

// upCmd starts the local Formbricks stack
var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Start a local Formbricks instance with docker compose",
	Long: `Downloads the official Formbricks docker compose definition if it is
not present, fills in freshly generated secrets, starts the containers
and waits until the instance answers its health endpoint.`,
	RunE: runUp,
}

func runUp(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	mgr := compose.NewManager(workspacePaths(), compose.Options{
		Logger: logger,
		Out:    cmd.OutOrStdout(),
	})
	return mgr.Up(ctx)
}
