// Package config loads the Formbricks API configuration and resolves the
// on-disk workspace layout shared by every brickseed command.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config holds the credentials and identifiers needed to talk to a running
// Formbricks instance. OrganizationID is only required for user creation, so
// it is not validated here; callers that need it check for themselves.
type Config struct {
	APIKey         string `json:"api_key" validate:"required"`
	BaseURL        string `json:"base_url" validate:"required"`
	EnvironmentID  string `json:"environment_id" validate:"required"`
	OrganizationID string `json:"organization_id"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report JSON field names in validation errors so they match what the
	// user actually has to fix in the config file.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Load reads and validates the API configuration at path. A missing file is
// reported with an error that unwraps to os.ErrNotExist so callers can show
// setup instructions instead of a bare read failure.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := validate.Struct(&cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			missing := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				missing = append(missing, fe.Field())
			}
			return nil, fmt.Errorf("config file %s is missing required field(s): %s", path, strings.Join(missing, ", "))
		}
		return nil, fmt.Errorf("failed to validate config file %s: %w", path, err)
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &cfg, nil
}

// SetupHint returns the instructions printed when the config file is absent.
func SetupHint(path string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Configuration file not found: %s\n\n", path)
	b.WriteString("Create it with your Formbricks credentials:\n\n")
	b.WriteString("  {\n")
	b.WriteString("    \"api_key\": \"your-api-key\",\n")
	b.WriteString("    \"base_url\": \"http://localhost:3000\",\n")
	b.WriteString("    \"environment_id\": \"your-environment-id\",\n")
	b.WriteString("    \"organization_id\": \"your-organization-id\"\n")
	b.WriteString("  }\n\n")
	b.WriteString("The API key and environment ID come from the Formbricks settings page.")
	return b.String()
}
