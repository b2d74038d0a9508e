package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brickseed/internal/config"
	"brickseed/internal/formbricks"
)

type fakeCall struct {
	prompt      string
	temperature float32
}

type fakeCompleter struct {
	replies []string
	calls   []fakeCall
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string, temperature float32) (string, error) {
	idx := len(f.calls)
	f.calls = append(f.calls, fakeCall{prompt: prompt, temperature: temperature})
	if idx >= len(f.replies) {
		return "", fmt.Errorf("no scripted reply for call %d", idx)
	}
	return f.replies[idx], nil
}

func (f *fakeCompleter) Model() string { return "fake-model" }

const fakeSurveysJSON = `[
	{
		"name": "Customer Pulse",
		"description": "Quarterly check-in",
		"questions": [
			{"type": "openText", "headline": "What should we improve?", "required": true},
			{"type": "nps", "headline": "How likely are you to recommend us?", "required": true}
		],
		"thankYouCard": {"headline": "Thanks!", "subheader": "See you soon."}
	},
	{
		"name": "Event Feedback",
		"description": "Post-event survey",
		"questions": [
			{"type": "rating", "headline": "Rate the venue", "required": true, "range": 5, "scale": "number"}
		],
		"thankYouCard": {"headline": "Thanks!", "subheader": "See you soon."}
	}
]`

const fakeUsersJSON = `[
	{"name": "Ada Marsh", "email": "ada@example.com", "role": "owner"},
	{"name": "Leo Fuentes", "email": "leo@example.com", "role": "member"}
]`

func fakeResponseJSON(surveyIndex int) string {
	return fmt.Sprintf(`[
		{"surveyIndex": %d, "answers": {"questionIndex_0": "Faster support"}, "completed": true}
	]`, surveyIndex)
}

func TestGeneratorRun(t *testing.T) {
	paths := config.NewPaths(t.TempDir())
	completer := &fakeCompleter{replies: []string{
		"```json\n" + fakeSurveysJSON + "\n```",
		fakeUsersJSON,
		fakeResponseJSON(0),
		fakeResponseJSON(1),
	}}

	var out bytes.Buffer
	g := New(completer, paths, Options{SurveyCount: 2, UserCount: 2, Out: &out})

	result, err := g.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Surveys)
	assert.Equal(t, 2, result.Users)
	assert.Equal(t, 2, result.Responses)
	assert.Equal(t, paths.GeneratedDir(), result.OutputDir)

	// Two batch calls plus one per survey.
	require.Len(t, completer.calls, 4)
	assert.Equal(t, float32(0.8), completer.calls[0].temperature)
	assert.Equal(t, float32(0.9), completer.calls[1].temperature)
	assert.Equal(t, float32(0.8), completer.calls[2].temperature)
	assert.Equal(t, float32(0.8), completer.calls[3].temperature)

	data, err := os.ReadFile(paths.SurveysFile())
	require.NoError(t, err)
	var surveys []formbricks.Survey
	require.NoError(t, json.Unmarshal(data, &surveys))
	require.Len(t, surveys, 2)
	assert.Equal(t, "Customer Pulse", surveys[0].Name)
	require.Len(t, surveys[0].Questions, 2)

	data, err = os.ReadFile(paths.UsersFile())
	require.NoError(t, err)
	var users []formbricks.User
	require.NoError(t, json.Unmarshal(data, &users))
	require.Len(t, users, 2)
	assert.Equal(t, "owner", users[0].Role)

	data, err = os.ReadFile(paths.ResponsesFile())
	require.NoError(t, err)
	var responses []formbricks.Response
	require.NoError(t, json.Unmarshal(data, &responses))
	require.Len(t, responses, 2)
	assert.Equal(t, 1, responses[1].SurveyIndex)
	assert.Equal(t, "Faster support", responses[1].Answers["questionIndex_0"])

	assert.Contains(t, out.String(), "Generated 2 surveys")
	assert.Contains(t, out.String(), "Processing survey 2/2...")
}

func TestGeneratorPromptCounts(t *testing.T) {
	paths := config.NewPaths(t.TempDir())
	completer := &fakeCompleter{replies: []string{"[]", "[]"}}

	g := New(completer, paths, Options{SurveyCount: 3, UserCount: 7, Out: &bytes.Buffer{}})
	_, err := g.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, completer.calls, 2)
	assert.Contains(t, completer.calls[0].prompt, "Generate 3 diverse survey structures")
	assert.Contains(t, completer.calls[1].prompt, "Generate 7 user profiles")
	assert.Contains(t, completer.calls[1].prompt, `3 users as "owner", 4 users as "member"`)
}

func TestGeneratorResponsePromptDescribesQuestions(t *testing.T) {
	paths := config.NewPaths(t.TempDir())
	surveys := `[
		{
			"name": "Mixed",
			"questions": [
				{"type": "multipleChoiceSingle", "headline": "Pick one", "choices": ["A", "B"]},
				{"type": "rating", "headline": "Rate it"},
				{"type": "nps", "headline": "Recommend?"},
				{"type": "openText", "headline": "Why?"}
			]
		}
	]`
	completer := &fakeCompleter{replies: []string{surveys, "[]", fakeResponseJSON(0)}}

	g := New(completer, paths, Options{Out: &bytes.Buffer{}})
	_, err := g.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, completer.calls, 3)
	prompt := completer.calls[2].prompt
	assert.Contains(t, prompt, "Survey: Mixed")
	assert.Contains(t, prompt, "Pick one (Type: multipleChoiceSingle, Choices: A, B)")
	assert.Contains(t, prompt, "Rate it (Type: rating, Range: 1-5)")
	assert.Contains(t, prompt, "Recommend? (Type: NPS, Range: 0-10)")
	assert.Contains(t, prompt, "Why? (Type: openText)")
	assert.Contains(t, prompt, `"surveyIndex": 0`)
}

func TestGeneratorMalformedOutput(t *testing.T) {
	paths := config.NewPaths(t.TempDir())
	completer := &fakeCompleter{replies: []string{"here are your surveys!"}}

	g := New(completer, paths, Options{Out: &bytes.Buffer{}})
	_, err := g.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed JSON")

	_, statErr := os.Stat(paths.SurveysFile())
	assert.True(t, os.IsNotExist(statErr))
}

func TestGeneratorOverwritesPriorRun(t *testing.T) {
	paths := config.NewPaths(t.TempDir())
	require.NoError(t, os.MkdirAll(paths.GeneratedDir(), 0755))
	require.NoError(t, os.WriteFile(paths.UsersFile(), []byte("stale"), 0644))

	completer := &fakeCompleter{replies: []string{"[]", fakeUsersJSON}}
	g := New(completer, paths, Options{Out: &bytes.Buffer{}})
	_, err := g.Run(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(paths.UsersFile())
	require.NoError(t, err)
	var users []formbricks.User
	require.NoError(t, json.Unmarshal(data, &users))
	assert.Len(t, users, 2)
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"json fence", "```json\n[1, 2]\n```", "[1, 2]"},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"other language tag", "```javascript\n[]\n```", "[]"},
		{"no fence", `[{"name": "x"}]`, `[{"name": "x"}]`},
		{"surrounding whitespace", "  \n[1]\n  ", "[1]"},
		{"unterminated fence", "```json\n[1]", "```json\n[1]"},
		{"inner backticks preserved", "```\nuse `go` here\n```", "use `go` here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFences(tt.in))
		})
	}
}

func TestDetectProvider(t *testing.T) {
	clear := func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "")
		t.Setenv("GEMINI_API_KEY", "")
	}

	t.Run("openai from env", func(t *testing.T) {
		clear(t)
		t.Setenv("OPENAI_API_KEY", "sk-1")

		provider, key, err := DetectProvider("")
		require.NoError(t, err)
		assert.Equal(t, ProviderOpenAI, provider)
		assert.Equal(t, "sk-1", key)
	})

	t.Run("gemini from env", func(t *testing.T) {
		clear(t)
		t.Setenv("GEMINI_API_KEY", "g-1")

		provider, key, err := DetectProvider("")
		require.NoError(t, err)
		assert.Equal(t, ProviderGemini, provider)
		assert.Equal(t, "g-1", key)
	})

	t.Run("openai wins when both set", func(t *testing.T) {
		clear(t)
		t.Setenv("OPENAI_API_KEY", "sk-1")
		t.Setenv("GEMINI_API_KEY", "g-1")

		provider, _, err := DetectProvider("")
		require.NoError(t, err)
		assert.Equal(t, ProviderOpenAI, provider)
	})

	t.Run("explicit provider overrides priority", func(t *testing.T) {
		clear(t)
		t.Setenv("OPENAI_API_KEY", "sk-1")
		t.Setenv("GEMINI_API_KEY", "g-1")

		provider, key, err := DetectProvider("gemini")
		require.NoError(t, err)
		assert.Equal(t, ProviderGemini, provider)
		assert.Equal(t, "g-1", key)
	})

	t.Run("explicit provider without key fails", func(t *testing.T) {
		clear(t)

		_, _, err := DetectProvider("openai")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "OPENAI_API_KEY")
	})

	t.Run("no keys at all", func(t *testing.T) {
		clear(t)

		_, _, err := DetectProvider("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no API key found")
	})

	t.Run("unknown provider", func(t *testing.T) {
		clear(t)

		_, _, err := DetectProvider("anthropic")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown provider")
	})
}
