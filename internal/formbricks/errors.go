package formbricks

import (
	"fmt"
	"strings"
)

// Error bodies are kept short enough to read in a terminal.
const maxErrorBody = 300

// APIError describes a non-2xx platform response. Seeding logs these and
// moves on; nothing retries.
type APIError struct {
	StatusCode int
	Method     string
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s returned %d", e.Method, e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("%s %s returned %d: %s", e.Method, e.Endpoint, e.StatusCode, e.Body)
}

func truncateBody(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBody {
		return s[:maxErrorBody] + "..."
	}
	return s
}
