// Package seed pushes generated documents into a running Formbricks
// instance over its HTTP APIs, in a fixed order: connectivity check, users,
// surveys, responses. Item failures are logged and skipped; only the
// connectivity gate and missing input files abort a run.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"brickseed/internal/config"
	"brickseed/internal/formbricks"
)

// DefaultPause is the client-side throttle between consecutive API calls.
const DefaultPause = 500 * time.Millisecond

// PlatformClient is the slice of the API client that seeding needs.
type PlatformClient interface {
	VerifyConnection(ctx context.Context) error
	CreateUser(ctx context.Context, u formbricks.User) (string, error)
	CreateSurvey(ctx context.Context, s formbricks.Survey) (*formbricks.CreatedSurvey, error)
	SubmitResponse(ctx context.Context, surveyID string, data map[string]any, finished bool) error
}

// Options configures a Seeder. Zero values fall back to defaults.
type Options struct {
	Logger *zap.Logger
	Out    io.Writer
}

// Seeder drives one seeding run. Everything is sequential; the only state
// built along the way is the survey-position to created-survey mapping that
// response submission consumes.
type Seeder struct {
	client PlatformClient
	paths  config.Paths
	logger *zap.Logger
	out    io.Writer
	pause  time.Duration
	runID  string
}

// New creates a Seeder reading documents from the given workspace.
func New(client PlatformClient, paths config.Paths, opts Options) *Seeder {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return &Seeder{
		client: client,
		paths:  paths,
		logger: opts.Logger,
		out:    opts.Out,
		pause:  DefaultPause,
		runID:  uuid.NewString(),
	}
}

// Tally counts outcomes for one category. Skipped items count as failed.
type Tally struct {
	Created int
	Failed  int
}

// Summary reports a completed run. Partial failure still yields a Summary;
// callers decide how to render it.
type Summary struct {
	RunID     string
	Users     Tally
	Surveys   Tally
	Responses Tally
	Duration  time.Duration
}

// Run executes the seeding workflow. The returned error is nil even when
// individual items failed; it is non-nil only for the fatal tier: connection
// check, unreadable input files, or cancellation.
func (s *Seeder) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	logger := s.logger.With(zap.String("run_id", s.runID))

	fmt.Fprintln(s.out, "Initiating Formbricks seeding process...")
	fmt.Fprintln(s.out)

	fmt.Fprintln(s.out, "Verifying API connection...")
	if err := s.client.VerifyConnection(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to the Formbricks API: %w", err)
	}
	fmt.Fprintln(s.out, "Connection verified successfully")
	fmt.Fprintln(s.out)

	var surveys []formbricks.Survey
	if err := s.readDocument(s.paths.SurveysFile(), &surveys); err != nil {
		return nil, err
	}
	var users []formbricks.User
	if err := s.readDocument(s.paths.UsersFile(), &users); err != nil {
		return nil, err
	}
	var responses []formbricks.Response
	if err := s.readDocument(s.paths.ResponsesFile(), &responses); err != nil {
		return nil, err
	}

	summary := &Summary{RunID: s.runID}

	fmt.Fprintln(s.out, "Creating users...")
	userTally, err := s.seedUsers(ctx, users, logger)
	summary.Users = userTally
	if err != nil {
		return summary, err
	}

	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "Creating surveys...")
	created, surveyTally, err := s.seedSurveys(ctx, surveys, logger)
	summary.Surveys = surveyTally
	if err != nil {
		return summary, err
	}

	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "Creating survey responses...")
	responseTally, err := s.seedResponses(ctx, responses, created, logger)
	summary.Responses = responseTally
	if err != nil {
		return summary, err
	}

	summary.Duration = time.Since(start)
	logger.Info("seeding complete",
		zap.Int("users_created", summary.Users.Created),
		zap.Int("users_failed", summary.Users.Failed),
		zap.Int("surveys_created", summary.Surveys.Created),
		zap.Int("surveys_failed", summary.Surveys.Failed),
		zap.Int("responses_created", summary.Responses.Created),
		zap.Int("responses_failed", summary.Responses.Failed),
		zap.Duration("duration", summary.Duration))
	return summary, nil
}

func (s *Seeder) readDocument(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("required file not found: %s. Run 'brickseed generate' first", filepath.Base(path))
		}
		return fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (s *Seeder) seedUsers(ctx context.Context, users []formbricks.User, logger *zap.Logger) (Tally, error) {
	var tally Tally
	for i, user := range users {
		fmt.Fprintf(s.out, "  [%d/%d] Creating user: %s\n", i+1, len(users), user.Name)

		if _, err := s.client.CreateUser(ctx, user); err != nil {
			tally.Failed++
			fmt.Fprintf(s.out, "      Failed: %v\n", err)
			logger.Warn("user creation failed",
				zap.Int("index", i),
				zap.String("email", user.Email),
				zap.Error(err))
		} else {
			tally.Created++
			fmt.Fprintf(s.out, "      Success - Role: %s\n", user.Role)
		}

		if err := s.wait(ctx); err != nil {
			return tally, err
		}
	}
	return tally, nil
}

func (s *Seeder) seedSurveys(ctx context.Context, surveys []formbricks.Survey, logger *zap.Logger) (map[int]*formbricks.CreatedSurvey, Tally, error) {
	// Keyed by original position, so a failed survey leaves a hole instead
	// of shifting later surveys under the wrong responses.
	created := make(map[int]*formbricks.CreatedSurvey, len(surveys))
	var tally Tally

	for i, survey := range surveys {
		fmt.Fprintf(s.out, "  [%d/%d] Creating survey: %s\n", i+1, len(surveys), survey.Name)

		result, err := s.client.CreateSurvey(ctx, survey)
		if err != nil {
			tally.Failed++
			fmt.Fprintf(s.out, "      Failed: %v\n", err)
			logger.Warn("survey creation failed",
				zap.Int("index", i),
				zap.String("name", survey.Name),
				zap.Error(err))
		} else {
			created[i] = result
			tally.Created++
			fmt.Fprintf(s.out, "      Success - Questions: %d\n", len(survey.Questions))
		}

		if err := s.wait(ctx); err != nil {
			return created, tally, err
		}
	}
	return created, tally, nil
}

func (s *Seeder) seedResponses(ctx context.Context, responses []formbricks.Response, created map[int]*formbricks.CreatedSurvey, logger *zap.Logger) (Tally, error) {
	var tally Tally
	for i, response := range responses {
		target, ok := created[response.SurveyIndex]
		if !ok {
			tally.Failed++
			fmt.Fprintf(s.out, "  [%d/%d] Skipped - no created survey at index %d\n", i+1, len(responses), response.SurveyIndex)
			logger.Warn("response skipped",
				zap.Int("index", i),
				zap.Int("survey_index", response.SurveyIndex))
			continue
		}

		fmt.Fprintf(s.out, "  [%d/%d] Creating response for survey %d\n", i+1, len(responses), response.SurveyIndex+1)

		data := s.resolveAnswers(response.Answers, target, logger)
		finished := response.Completed == nil || *response.Completed
		if err := s.client.SubmitResponse(ctx, target.ID, data, finished); err != nil {
			tally.Failed++
			fmt.Fprintf(s.out, "      Failed: %v\n", err)
			logger.Warn("response submission failed",
				zap.Int("index", i),
				zap.String("survey_id", target.ID),
				zap.Error(err))
		} else {
			tally.Created++
			fmt.Fprintln(s.out, "      Success")
		}

		if err := s.wait(ctx); err != nil {
			return tally, err
		}
	}
	return tally, nil
}

// resolveAnswers translates "questionIndex_N" keys into the platform's
// question ids. Keys that cannot be resolved are dropped with a log; the
// rest of the answer set still goes out.
func (s *Seeder) resolveAnswers(answers map[string]any, created *formbricks.CreatedSurvey, logger *zap.Logger) map[string]any {
	data := make(map[string]any, len(answers))
	for key, value := range answers {
		suffix, ok := strings.CutPrefix(key, "questionIndex_")
		if !ok {
			logger.Warn("dropping answer with unrecognized key",
				zap.String("key", key),
				zap.String("survey_id", created.ID))
			continue
		}
		idx, err := strconv.Atoi(suffix)
		if err != nil || idx < 0 || idx >= len(created.QuestionIDs) {
			logger.Warn("dropping answer with unresolvable question index",
				zap.String("key", key),
				zap.String("survey_id", created.ID))
			continue
		}
		data[created.QuestionIDs[idx]] = value
	}
	return data
}

func (s *Seeder) wait(ctx context.Context) error {
	if s.pause <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.pause)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
