package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"brickseed/cmd/brickseed/ui"
	"brickseed/internal/compose"
	"brickseed/internal/config"
	"brickseed/internal/generate"
)

// statusCmd shows workspace and instance state
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show workspace files and instance health",
	RunE:  showStatus,
}

func showStatus(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	paths := workspacePaths()
	styles := ui.DefaultStyles()
	out := cmd.OutOrStdout()

	table := ui.NewSummaryTable("Workspace", []string{"Item", "State"})
	table.AddRow("API config", fileState(paths.ConfigFile()))
	table.AddRow("Compose file", fileState(paths.ComposeFile()))
	table.AddRow("Generated surveys", fileState(paths.SurveysFile()))
	table.AddRow("Generated users", fileState(paths.UsersFile()))
	table.AddRow("Generated responses", fileState(paths.ResponsesFile()))
	fmt.Fprint(out, table.Render(styles))

	if provider, _, err := generate.DetectProvider(""); err == nil {
		fmt.Fprintf(out, "LLM provider: %s\n", provider)
	} else {
		fmt.Fprintln(out, styles.Warning.Render("LLM provider: no API key set (OPENAI_API_KEY or GEMINI_API_KEY)"))
	}

	cfg, err := paths.Load()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(out, "No API configuration yet.")
			fmt.Fprintln(out, config.SetupHint(paths.ConfigFile()))
			return nil
		}
		return err
	}

	fmt.Fprintf(out, "Instance: %s (environment %s)\n", cfg.BaseURL, cfg.EnvironmentID)
	if cfg.OrganizationID == "" {
		fmt.Fprintln(out, styles.Warning.Render("No organization_id configured; user creation needs it (self-hosted only)"))
	}
	if compose.CheckHealth(ctx, cfg.BaseURL) {
		fmt.Fprintln(out, styles.Success.Render("Health check: OK"))
	} else {
		fmt.Fprintln(out, styles.Warning.Render("Health check: not responding"))
	}
	return nil
}

func fileState(path string) string {
	if _, err := os.Stat(path); err != nil {
		return "missing"
	}
	return "present"
}
