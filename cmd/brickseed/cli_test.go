package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"brickseed/internal/config"
	"brickseed/internal/seed"
)

// newTestCmd returns a bare command whose output is captured.
func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	return cmd, &buf
}

func setWorkspace(t *testing.T) string {
	t.Helper()
	logger = zap.NewNop()
	ws := t.TempDir()
	workspace = ws
	t.Cleanup(func() { workspace = "" })
	return ws
}

func TestStatusCmdEmptyWorkspace(t *testing.T) {
	setWorkspace(t)
	cmd, buf := newTestCmd()

	if err := showStatus(cmd, nil); err != nil {
		t.Fatalf("showStatus failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "missing") {
		t.Errorf("expected missing workspace files, got: %s", out)
	}
	if !strings.Contains(out, "No API configuration yet.") {
		t.Errorf("expected configuration hint, got: %s", out)
	}
}

func TestStatusCmdWithConfig(t *testing.T) {
	ws := setWorkspace(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	writeTestConfig(t, ws, srv.URL)

	cmd, buf := newTestCmd()
	if err := showStatus(cmd, nil); err != nil {
		t.Fatalf("showStatus failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Instance: "+srv.URL) {
		t.Errorf("expected instance line, got: %s", out)
	}
	if !strings.Contains(out, "Health check: OK") {
		t.Errorf("expected passing health check, got: %s", out)
	}
}

func TestDownCmdMissingCompose(t *testing.T) {
	setWorkspace(t)
	cmd, buf := newTestCmd()

	if err := runDown(cmd, nil); err != nil {
		t.Fatalf("runDown failed: %v", err)
	}
	if !strings.Contains(buf.String(), "nothing to stop") {
		t.Errorf("expected no-op message, got: %s", buf.String())
	}
}

func TestSeedCmdMissingConfig(t *testing.T) {
	setWorkspace(t)
	cmd, buf := newTestCmd()

	err := runSeed(cmd, nil)
	if err == nil {
		t.Fatal("expected error for missing configuration")
	}
	if !strings.Contains(err.Error(), "configuration not found") {
		t.Errorf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "api_config.json") {
		t.Errorf("expected setup hint, got: %s", buf.String())
	}
}

func TestRenderSeedSummary(t *testing.T) {
	summary := &seed.Summary{
		Users:     seed.Tally{Created: 10},
		Surveys:   seed.Tally{Created: 5, Failed: 1},
		Responses: seed.Tally{Created: 20},
		Duration:  1500 * time.Millisecond,
	}

	out := renderSeedSummary(summary, "http://localhost:3000")
	for _, want := range []string{"Seeding Summary", "Users", "10", "Surveys", "Responses",
		"Completed in 1.5s", "Access your populated instance at: http://localhost:3000"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary output missing %q:\n%s", want, out)
		}
	}
}

func TestSignalContextCancel(t *testing.T) {
	logger = zap.NewNop()

	ctx, cancel := signalContext(context.Background())
	cancel()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context was not canceled")
	}
}

func TestSignalContextNilParent(t *testing.T) {
	logger = zap.NewNop()

	// A command that was never executed through the root hands out a nil
	// context; signalContext must still work from one.
	cmd := &cobra.Command{}
	if cmd.Context() != nil {
		t.Fatal("expected a bare command to have no context")
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()
	if ctx == nil {
		t.Fatal("expected a usable context")
	}
	if err := ctx.Err(); err != nil {
		t.Fatalf("context unexpectedly done: %v", err)
	}
}

func writeTestConfig(t *testing.T, ws, baseURL string) {
	t.Helper()
	path := config.NewPaths(ws).ConfigFile()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	body := `{"api_key":"fbk_test","base_url":"` + baseURL + `","environment_id":"env1"}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
}
