package config

import "path/filepath"

// Default file names inside the workspace. The layout matches what generate
// writes and seed reads, so the two commands compose without extra flags.
const (
	configFileName    = "api_config.json"
	composeFileName   = "docker-compose.yml"
	surveysFileName   = "surveys.json"
	usersFileName     = "users.json"
	responsesFileName = "responses.json"
)

// Paths resolves every well-known file location under a workspace root.
type Paths struct {
	root string
}

// NewPaths returns a Paths anchored at root. An empty root means the current
// directory.
func NewPaths(root string) Paths {
	if root == "" {
		root = "."
	}
	return Paths{root: root}
}

// Root returns the workspace root directory.
func (p Paths) Root() string { return p.root }

// ConfigFile is the API configuration consumed by seed and status.
func (p Paths) ConfigFile() string {
	return filepath.Join(p.root, "data", "config", configFileName)
}

// GeneratedDir holds the JSON documents produced by generate.
func (p Paths) GeneratedDir() string {
	return filepath.Join(p.root, "data", "generated")
}

func (p Paths) SurveysFile() string {
	return filepath.Join(p.GeneratedDir(), surveysFileName)
}

func (p Paths) UsersFile() string {
	return filepath.Join(p.GeneratedDir(), usersFileName)
}

func (p Paths) ResponsesFile() string {
	return filepath.Join(p.GeneratedDir(), responsesFileName)
}

// DockerDir holds the downloaded compose file and anything else the stack
// needs at runtime.
func (p Paths) DockerDir() string {
	return filepath.Join(p.root, "docker")
}

func (p Paths) ComposeFile() string {
	return filepath.Join(p.DockerDir(), composeFileName)
}

// Load reads and validates the API configuration for this workspace.
func (p Paths) Load() (*Config, error) {
	return Load(p.ConfigFile())
}
