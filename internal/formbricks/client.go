package formbricks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// ClientConfig carries everything a Client needs to reach an instance.
type ClientConfig struct {
	BaseURL        string
	APIKey         string
	EnvironmentID  string
	OrganizationID string
	Timeout        time.Duration
}

// Client talks to a Formbricks instance. A single instance is shared across
// a whole seed run. Every call is synchronous and single-shot; failures come
// back as an *APIError or a wrapped transport error, and the caller decides
// whether to continue.
type Client struct {
	baseURL        string
	apiKey         string
	environmentID  string
	organizationID string
	httpClient     *http.Client
}

// NewClient creates a client with the given configuration.
func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:         cfg.APIKey,
		environmentID:  cfg.EnvironmentID,
		organizationID: cfg.OrganizationID,
		httpClient:     &http.Client{Timeout: timeout},
	}
}

// VerifyConnection checks reachability and key validity against the
// management /me endpoint. Seeding runs it first and aborts on failure.
func (c *Client) VerifyConnection(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/api/v1/management/me", nil, true)
	return err
}

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"isActive"`
}

// CreateUser provisions a user in the configured organization and returns
// the created id when the response carries one. The endpoint only exists on
// self-hosted deployments; Formbricks Cloud rejects it.
func (c *Client) CreateUser(ctx context.Context, u User) (string, error) {
	if c.organizationID == "" {
		return "", fmt.Errorf("organization_id is required for user creation")
	}

	endpoint := fmt.Sprintf("/api/v2/organizations/%s/users", c.organizationID)
	payload := createUserRequest{
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
		IsActive: true,
	}

	body, err := c.do(ctx, http.MethodPost, endpoint, payload, true)
	if err != nil {
		return "", err
	}

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		return "", fmt.Errorf("failed to parse user creation response: %w", err)
	}
	return created.Data.ID, nil
}

// CreatedSurvey is what seeding needs from a survey-creation response: the
// survey id plus the platform-assigned question ids in submitted order.
type CreatedSurvey struct {
	ID          string
	QuestionIDs []string
}

// CreateSurvey transforms a survey document and submits it. The returned
// question ids mirror the submitted question order, so index-keyed answers
// can be resolved later without re-fetching the survey.
func (c *Client) CreateSurvey(ctx context.Context, s Survey) (*CreatedSurvey, error) {
	payload := TransformSurvey(s, c.environmentID)

	body, err := c.do(ctx, http.MethodPost, "/api/v1/management/surveys", payload, true)
	if err != nil {
		return nil, err
	}

	var created struct {
		Data struct {
			ID        string `json:"id"`
			Questions []struct {
				ID string `json:"id"`
			} `json:"questions"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("failed to parse survey creation response: %w", err)
	}
	if created.Data.ID == "" {
		return nil, fmt.Errorf("survey creation response carries no survey id")
	}

	ids := make([]string, 0, len(created.Data.Questions))
	for _, q := range created.Data.Questions {
		ids = append(ids, q.ID)
	}
	return &CreatedSurvey{ID: created.Data.ID, QuestionIDs: ids}, nil
}

type submitResponseRequest struct {
	SurveyID string         `json:"surveyId"`
	Finished bool           `json:"finished"`
	Data     map[string]any `json:"data"`
}

// SubmitResponse files a response against a survey. data is keyed by
// platform question id. The client API serves public link surveys, so this
// call carries no API key.
func (c *Client) SubmitResponse(ctx context.Context, surveyID string, data map[string]any, finished bool) error {
	endpoint := fmt.Sprintf("/api/v1/client/%s/responses", c.environmentID)
	payload := submitResponseRequest{
		SurveyID: surveyID,
		Finished: finished,
		Data:     data,
	}
	_, err := c.do(ctx, http.MethodPost, endpoint, payload, false)
	return err
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload any, authenticated bool) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if authenticated {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Endpoint:   endpoint,
			Body:       truncateBody(body),
		}
	}
	return body, nil
}
