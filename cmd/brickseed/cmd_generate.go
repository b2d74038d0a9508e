package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"brickseed/internal/generate"
)

// generateCmd produces demo data with an LLM
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate demo surveys, users and responses with an LLM",
	Long: `Asks an LLM to invent realistic survey structures, user profiles and
survey responses, and writes them as JSON into the workspace.

The provider is picked from the environment: OPENAI_API_KEY selects
OpenAI, GEMINI_API_KEY selects Gemini. Use --provider to force one.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("provider", "", "LLM provider: openai or gemini (default: detect from environment)")
	generateCmd.Flags().String("model", "", "Model name (default: provider specific)")
	generateCmd.Flags().Int("surveys", generate.DefaultSurveyCount, "Number of surveys to generate")
	generateCmd.Flags().Int("users", generate.DefaultUserCount, "Number of users to generate")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	provider, _ := cmd.Flags().GetString("provider")
	model, _ := cmd.Flags().GetString("model")
	surveys, _ := cmd.Flags().GetInt("surveys")
	users, _ := cmd.Flags().GetInt("users")

	completer, err := generate.NewCompleterFromEnv(provider, model)
	if err != nil {
		return err
	}
	logger.Info("generating demo data", zap.String("model", completer.Model()),
		zap.Int("surveys", surveys), zap.Int("users", users))

	gen := generate.New(completer, workspacePaths(), generate.Options{
		SurveyCount: surveys,
		UserCount:   users,
		Logger:      logger,
		Out:         cmd.OutOrStdout(),
	})

	result, err := gen.Run(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Data generation completed successfully")
	fmt.Fprintf(out, "Files saved to %s:\n", result.OutputDir)
	for _, path := range []string{
		workspacePaths().SurveysFile(),
		workspacePaths().UsersFile(),
		workspacePaths().ResponsesFile(),
	} {
		fmt.Fprintf(out, "  - %s\n", filepath.Base(path))
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next step: run 'brickseed seed' to populate Formbricks")
	return nil
}
