// Package compose manages the local Formbricks deployment: fetching the
// official docker compose definition, filling generated secrets into it,
// and shelling out to docker compose for the lifecycle operations.
package compose

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"brickseed/internal/config"
)

const (
	// ComposeURL is the official stable compose definition.
	ComposeURL = "https://raw.githubusercontent.com/formbricks/formbricks/stable/docker/docker-compose.yml"
	// AppURL is where the stack serves once it is up.
	AppURL = "http://localhost:3000"

	healthPath = "/api/health"

	defaultHealthAttempts = 30
	defaultHealthInterval = 2 * time.Second
	healthProbeTimeout    = 2 * time.Second
	downloadTimeout       = 2 * time.Minute
	dockerProbeTimeout    = 5 * time.Second
)

// Options configures a Manager. Zero values fall back to defaults.
type Options struct {
	Logger *zap.Logger
	Out    io.Writer
}

// Manager owns the docker compose lifecycle for one workspace. The docker
// binary is resolved lazily so that operations which never reach docker,
// like down with no compose file, work without it.
type Manager struct {
	paths      config.Paths
	logger     *zap.Logger
	out        io.Writer
	dockerPath string

	composeURL     string
	baseURL        string
	healthAttempts int
	healthInterval time.Duration
	httpClient     *http.Client
}

// NewManager creates a Manager for the given workspace.
func NewManager(paths config.Paths, opts Options) *Manager {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return &Manager{
		paths:          paths,
		logger:         opts.Logger,
		out:            opts.Out,
		composeURL:     ComposeURL,
		baseURL:        AppURL,
		healthAttempts: defaultHealthAttempts,
		healthInterval: defaultHealthInterval,
		httpClient:     &http.Client{},
	}
}

// Up brings the Formbricks stack up: compose file in place, secrets
// filled, containers started, health endpoint answering. Any failed stage
// aborts the sequence.
func (m *Manager) Up(ctx context.Context) error {
	fmt.Fprintln(m.out, "Starting Formbricks setup...")
	fmt.Fprintln(m.out)

	if err := m.ensureDocker(ctx); err != nil {
		return err
	}

	if err := os.MkdirAll(m.paths.DockerDir(), 0755); err != nil {
		return fmt.Errorf("failed to create docker directory: %w", err)
	}

	composeFile := m.paths.ComposeFile()
	if _, err := os.Stat(composeFile); os.IsNotExist(err) {
		fmt.Fprintln(m.out, "Downloading docker-compose.yml from Formbricks repository...")
		if err := m.downloadCompose(ctx, composeFile); err != nil {
			return err
		}
		fmt.Fprintln(m.out, "Download complete")
		fmt.Fprintln(m.out)
	} else if err != nil {
		return fmt.Errorf("failed to stat compose file: %w", err)
	}

	fmt.Fprintln(m.out, "Generating security secrets...")
	filled, err := fillSecrets(composeFile)
	if err != nil {
		return err
	}
	if filled > 0 {
		fmt.Fprintln(m.out, "Secrets generated successfully")
	} else {
		fmt.Fprintln(m.out, "Secrets already present, leaving them unchanged")
	}
	fmt.Fprintln(m.out)
	m.logger.Info("secrets ready", zap.Int("filled", filled))

	fmt.Fprintln(m.out, "Starting Docker containers...")
	stdout, stderr, err := m.runCompose(ctx, "up", "-d")
	if err != nil {
		if stderr == "" {
			stderr = err.Error()
		}
		return fmt.Errorf("failed to start Docker services: %s", stderr)
	}
	if stdout != "" {
		fmt.Fprintln(m.out, stdout)
	}
	fmt.Fprintln(m.out)

	fmt.Fprintln(m.out, "Waiting for services to be ready...")
	if err := m.waitForHealth(ctx); err != nil {
		return err
	}
	fmt.Fprintln(m.out)

	fmt.Fprintln(m.out, "Formbricks is now running")
	fmt.Fprintf(m.out, "Access URL: %s\n", m.baseURL)
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, "Next steps:")
	fmt.Fprintf(m.out, "1. Visit %s and complete the setup wizard\n", m.baseURL)
	fmt.Fprintln(m.out, "2. Create an API key in Settings")
	fmt.Fprintf(m.out, "3. Save configuration to %s\n", m.paths.ConfigFile())
	fmt.Fprintln(m.out, "4. Run: brickseed generate")
	return nil
}

// Down stops the stack and removes containers and volumes. A missing
// compose file means there is nothing to stop, which is not an error, and
// is decided before docker is even looked up.
func (m *Manager) Down(ctx context.Context) error {
	fmt.Fprintln(m.out, "Stopping Formbricks services...")
	fmt.Fprintln(m.out)

	if _, err := os.Stat(m.paths.ComposeFile()); os.IsNotExist(err) {
		fmt.Fprintln(m.out, "No compose file found - nothing to stop")
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to stat compose file: %w", err)
	}

	if err := m.ensureDocker(ctx); err != nil {
		return err
	}

	fmt.Fprintln(m.out, "Stopping and removing containers...")
	stdout, stderr, err := m.runCompose(ctx, "down", "-v")
	if err != nil {
		if stderr == "" {
			stderr = err.Error()
		}
		fmt.Fprintf(m.out, "Warning: %s\n", stderr)
		m.logger.Warn("docker compose down failed", zap.String("stderr", stderr), zap.Error(err))
	} else if stdout != "" {
		fmt.Fprintln(m.out, stdout)
	}

	fmt.Fprintln(m.out, "Formbricks has been stopped")
	fmt.Fprintln(m.out, "All containers and volumes have been removed")
	fmt.Fprintln(m.out, "Note: Run 'brickseed up' to start fresh")
	return nil
}

// ensureDocker resolves the docker binary once and probes that the compose
// plugin responds.
func (m *Manager) ensureDocker(ctx context.Context) error {
	if m.dockerPath != "" {
		return nil
	}

	dockerPath, err := exec.LookPath("docker")
	if err != nil {
		return fmt.Errorf("docker binary not found in PATH; install Docker to manage the Formbricks stack: %w", err)
	}

	probeCtx, cancel := context.WithTimeout(ctx, dockerProbeTimeout)
	defer cancel()
	if err := exec.CommandContext(probeCtx, dockerPath, "compose", "version").Run(); err != nil {
		return fmt.Errorf("docker compose is not available: %w", err)
	}

	m.dockerPath = dockerPath
	return nil
}

func (m *Manager) runCompose(ctx context.Context, args ...string) (string, string, error) {
	full := append([]string{"compose", "-f", m.paths.ComposeFile()}, args...)
	cmd := exec.CommandContext(ctx, m.dockerPath, full...)
	cmd.Dir = m.paths.DockerDir()

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	m.logger.Debug("running docker compose", zap.Strings("args", args))
	err := cmd.Run()
	return strings.TrimSpace(stdoutBuf.String()), strings.TrimSpace(stderrBuf.String()), err
}

func (m *Manager) downloadCompose(ctx context.Context, dest string) error {
	reqCtx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, m.composeURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download docker-compose.yml: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download docker-compose.yml: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read compose download: %w", err)
	}
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return fmt.Errorf("failed to write compose file: %w", err)
	}

	m.logger.Debug("compose file downloaded", zap.String("path", dest), zap.Int("bytes", len(data)))
	return nil
}

// waitForHealth polls the health endpoint until it answers or the
// attempt limit is reached.
func (m *Manager) waitForHealth(ctx context.Context) error {
	healthURL := m.baseURL + healthPath

	for attempt := 1; attempt <= m.healthAttempts; attempt++ {
		if probeHealth(ctx, m.httpClient, healthURL) {
			m.logger.Debug("health check passed", zap.Int("attempt", attempt))
			return nil
		}

		timer := time.NewTimer(m.healthInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		if attempt%5 == 0 {
			fmt.Fprintf(m.out, "Still waiting... (attempt %d/%d)\n", attempt, m.healthAttempts)
		}
	}

	return fmt.Errorf("service did not respond after %d attempts; check container state with: docker ps", m.healthAttempts)
}

// CheckHealth reports whether the app at baseURL answers its health
// endpoint. Used by status to probe a running instance.
func CheckHealth(ctx context.Context, baseURL string) bool {
	client := &http.Client{}
	defer client.CloseIdleConnections()
	return probeHealth(ctx, client, strings.TrimRight(baseURL, "/")+healthPath)
}

func probeHealth(ctx context.Context, client *http.Client, url string) bool {
	reqCtx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode >= 200 && resp.StatusCode < 400
}
