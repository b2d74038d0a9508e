package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"brickseed/internal/config"
	"brickseed/internal/formbricks"
)

// Default batch sizes, matching what the prompts were tuned for.
const (
	DefaultSurveyCount = 5
	DefaultUserCount   = 10
)

// Temperatures per step. Users run hotter for name variety.
const (
	surveysTemperature   = 0.8
	usersTemperature     = 0.9
	responsesTemperature = 0.8
)

// Options configures a Generator. Zero values fall back to defaults.
type Options struct {
	SurveyCount int
	UserCount   int
	Logger      *zap.Logger
	Out         io.Writer
}

// Generator drives the generation workflow: one completion for the survey
// batch, one for the user batch, and one per survey for its responses.
// Output lands as pretty-printed JSON under the workspace's generated-data
// directory, overwriting whatever a prior run left there.
type Generator struct {
	completer   TextCompleter
	paths       config.Paths
	surveyCount int
	userCount   int
	logger      *zap.Logger
	out         io.Writer
}

// New creates a Generator writing into the given workspace.
func New(completer TextCompleter, paths config.Paths, opts Options) *Generator {
	if opts.SurveyCount <= 0 {
		opts.SurveyCount = DefaultSurveyCount
	}
	if opts.UserCount <= 0 {
		opts.UserCount = DefaultUserCount
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return &Generator{
		completer:   completer,
		paths:       paths,
		surveyCount: opts.SurveyCount,
		userCount:   opts.UserCount,
		logger:      opts.Logger,
		out:         opts.Out,
	}
}

// Result reports what a run produced.
type Result struct {
	Surveys   int
	Users     int
	Responses int
	OutputDir string
}

// Run executes the whole workflow. Any step failing is fatal; there is no
// retry and no partial output except files already written.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	fmt.Fprintln(g.out, "Initiating data generation using LLM...")
	fmt.Fprintln(g.out)
	g.logger.Info("starting generation",
		zap.String("model", g.completer.Model()),
		zap.Int("surveys", g.surveyCount),
		zap.Int("users", g.userCount))

	if err := os.MkdirAll(g.paths.GeneratedDir(), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	fmt.Fprintln(g.out, "Generating survey structures...")
	surveys, err := g.generateSurveys(ctx)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(g.out, "Generated %d surveys\n\n", len(surveys))

	fmt.Fprintln(g.out, "Generating user profiles...")
	users, err := g.generateUsers(ctx)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(g.out, "Generated %d users\n\n", len(users))

	fmt.Fprintln(g.out, "Generating survey responses...")
	responses, err := g.generateResponses(ctx, surveys)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(g.out, "Generated %d responses\n\n", len(responses))

	fmt.Fprintln(g.out, "Saving generated data...")
	if err := writeJSON(g.paths.SurveysFile(), surveys); err != nil {
		return nil, err
	}
	if err := writeJSON(g.paths.UsersFile(), users); err != nil {
		return nil, err
	}
	if err := writeJSON(g.paths.ResponsesFile(), responses); err != nil {
		return nil, err
	}

	return &Result{
		Surveys:   len(surveys),
		Users:     len(users),
		Responses: len(responses),
		OutputDir: g.paths.GeneratedDir(),
	}, nil
}

func (g *Generator) generateSurveys(ctx context.Context) ([]formbricks.Survey, error) {
	raw, err := g.complete(ctx, buildSurveysPrompt(g.surveyCount), surveysTemperature)
	if err != nil {
		return nil, fmt.Errorf("survey generation failed: %w", err)
	}

	var surveys []formbricks.Survey
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &surveys); err != nil {
		return nil, fmt.Errorf("survey generation returned malformed JSON: %w", err)
	}
	return surveys, nil
}

func (g *Generator) generateUsers(ctx context.Context) ([]formbricks.User, error) {
	raw, err := g.complete(ctx, buildUsersPrompt(g.userCount), usersTemperature)
	if err != nil {
		return nil, fmt.Errorf("user generation failed: %w", err)
	}

	var users []formbricks.User
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &users); err != nil {
		return nil, fmt.Errorf("user generation returned malformed JSON: %w", err)
	}
	return users, nil
}

func (g *Generator) generateResponses(ctx context.Context, surveys []formbricks.Survey) ([]formbricks.Response, error) {
	all := make([]formbricks.Response, 0, len(surveys))
	for i, survey := range surveys {
		fmt.Fprintf(g.out, "  Processing survey %d/%d...\n", i+1, len(surveys))

		raw, err := g.complete(ctx, buildResponsesPrompt(i, survey), responsesTemperature)
		if err != nil {
			return nil, fmt.Errorf("response generation for survey %d failed: %w", i+1, err)
		}

		var responses []formbricks.Response
		if err := json.Unmarshal([]byte(stripCodeFences(raw)), &responses); err != nil {
			return nil, fmt.Errorf("response generation for survey %d returned malformed JSON: %w", i+1, err)
		}
		all = append(all, responses...)
	}
	return all, nil
}

func (g *Generator) complete(ctx context.Context, prompt string, temperature float32) (string, error) {
	raw, err := g.completer.Complete(ctx, prompt, temperature)
	if err != nil {
		return "", err
	}
	g.logger.Debug("completion received",
		zap.Int("prompt_chars", len(prompt)),
		zap.Int("response_chars", len(raw)))
	return raw, nil
}

// stripCodeFences removes markdown code fence wrapping from a completion.
// Handles ```json, bare ```, and other language specifiers; anything else
// passes through untouched.
func stripCodeFences(s string) string {
	trimmed := strings.TrimSpace(s)

	if strings.HasPrefix(trimmed, "```") {
		firstNewline := strings.Index(trimmed, "\n")
		if firstNewline != -1 {
			lastFence := strings.LastIndex(trimmed, "```")
			if lastFence > firstNewline {
				content := trimmed[firstNewline+1 : lastFence]
				return strings.TrimSpace(content)
			}
		}
	}

	return trimmed
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}
