package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"brickseed/cmd/brickseed/ui"
	"brickseed/internal/config"
	"brickseed/internal/formbricks"
	"brickseed/internal/seed"
)

// seedCmd pushes generated data into the running instance
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the Formbricks instance with the generated data",
	Long: `Reads the generated surveys, users and responses from the workspace
and creates them in the Formbricks instance through its APIs. Items
that fail are reported and skipped; the rest of the run continues.`,
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	paths := workspacePaths()
	cfg, err := paths.Load()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(cmd.OutOrStdout(), config.SetupHint(paths.ConfigFile()))
			return fmt.Errorf("configuration not found at %s", paths.ConfigFile())
		}
		return err
	}

	client := formbricks.NewClient(formbricks.ClientConfig{
		BaseURL:        cfg.BaseURL,
		APIKey:         cfg.APIKey,
		EnvironmentID:  cfg.EnvironmentID,
		OrganizationID: cfg.OrganizationID,
	})

	seeder := seed.New(client, paths, seed.Options{
		Logger: logger,
		Out:    cmd.OutOrStdout(),
	})

	summary, err := seeder.Run(ctx)
	if summary != nil {
		fmt.Fprint(cmd.OutOrStdout(), renderSeedSummary(summary, cfg.BaseURL))
	}
	return err
}

func renderSeedSummary(summary *seed.Summary, baseURL string) string {
	styles := ui.DefaultStyles()

	table := ui.NewSummaryTable("Seeding Summary", []string{"Resource", "Created", "Failed"})
	table.AddRow("Users", strconv.Itoa(summary.Users.Created), strconv.Itoa(summary.Users.Failed))
	table.AddRow("Surveys", strconv.Itoa(summary.Surveys.Created), strconv.Itoa(summary.Surveys.Failed))
	table.AddRow("Responses", strconv.Itoa(summary.Responses.Created), strconv.Itoa(summary.Responses.Failed))

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(table.Render(styles))
	sb.WriteString(fmt.Sprintf("Completed in %s\n", summary.Duration.Round(time.Millisecond)))
	sb.WriteString(styles.Success.Render("Access your populated instance at: "+baseURL) + "\n")
	return sb.String()
}
