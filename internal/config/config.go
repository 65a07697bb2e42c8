package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds application configuration.
// Relative paths are resolved against the process working directory.
type Config struct {
	// SourceDir is the source-controlled posts tree (YYYY/blog-*.md) that is
	// copied into ContentRoot before indexing. Empty disables the copy step.
	SourceDir string `json:"source_dir,omitempty"`

	// ContentRoot is the served tree that is scanned for year directories.
	ContentRoot string `json:"content_root,omitempty"`

	// OutputPath is where the JSON manifest is written.
	// Defaults to ContentRoot/blog-index.json.
	OutputPath string `json:"output_path,omitempty"`

	// SummaryMaxLength is the summary budget in characters.
	SummaryMaxLength int `json:"summary_max_length,omitempty"`

	// LogLevel is a zap level name: debug, info, warn, error.
	LogLevel string `json:"log_level,omitempty"`

	// Bind and Port are the HTTP listen address for serve.
	Bind string `json:"bind,omitempty"`
	Port int  `json:"port,omitempty"`

	// AuthUsername and AuthPasswordHash describe the single API account.
	// The hash is a bcrypt hash (see `blogdex hash-password`).
	AuthUsername     string `json:"auth_username,omitempty"`
	AuthPasswordHash string `json:"auth_password_hash,omitempty"`

	// TokenTTL is how long issued tokens stay valid, as a Go duration string ("24h").
	TokenTTL string `json:"token_ttl,omitempty"`

	// JWTSecret signs API tokens. Usually supplied through JWT_SECRET rather than the file.
	JWTSecret string `json:"jwt_secret,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// IndexFileName is the manifest file name inside the content root.
const IndexFileName = "blog-index.json"

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		SourceDir:        filepath.Join("content", "posts"),
		ContentRoot:      filepath.Join("frontend", "public"),
		SummaryMaxLength: 150,
		LogLevel:         "info",
		Bind:             "127.0.0.1",
		Port:             3001,
		TokenTTL:         "24h",
	}
}

// ResolvedOutputPath returns OutputPath, or ContentRoot/blog-index.json when unset.
func (c *Config) ResolvedOutputPath() string {
	if c.OutputPath != "" {
		return c.OutputPath
	}
	return filepath.Join(c.ContentRoot, IndexFileName)
}

// TokenLifetime parses TokenTTL, falling back to 24h when empty or invalid.
func (c *Config) TokenLifetime() time.Duration {
	d, err := time.ParseDuration(c.TokenTTL)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.blogdex.
func Load(baseDir string) (*Config, error) {
	return loadFile(filepath.Join(baseDir, "config.json"))
}

// LoadWithProject loads configuration from both global (~/.blogdex) and project (.blogdex) directories.
// Project config is found by walking upward from startDir to find the nearest .blogdex/config.json.
// Project config takes precedence for scalar values; arrays are merged (deduplicated).
// Either or both configs may be missing.
func LoadWithProject(globalDir, startDir string) (*Config, error) {
	global, err := loadFileRaw(filepath.Join(globalDir, "config.json"))
	if err != nil {
		return nil, err
	}

	project, err := loadFileRaw(FindProjectConfig(startDir))
	if err != nil {
		return nil, err
	}

	return Merge(Merge(DefaultConfig(), global), project), nil
}

// FindProjectConfig walks upward from startDir to find the nearest .blogdex/config.json.
// Returns the path if found, or empty string if not found.
func FindProjectConfig(startDir string) string {
	dir := startDir
	for {
		configPath := filepath.Join(dir, ".blogdex", "config.json")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	if configPath == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile loads configuration from a specific file path.
// Returns default config if the file doesn't exist.
func loadFile(configPath string) (*Config, error) {
	cfg, err := loadFileRaw(configPath)
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	return &Config{
		SourceDir:        pick(overlay.SourceDir, base.SourceDir),
		ContentRoot:      pick(overlay.ContentRoot, base.ContentRoot),
		OutputPath:       pick(overlay.OutputPath, base.OutputPath),
		SummaryMaxLength: pick(overlay.SummaryMaxLength, base.SummaryMaxLength),
		LogLevel:         pick(overlay.LogLevel, base.LogLevel),
		Bind:             pick(overlay.Bind, base.Bind),
		Port:             pick(overlay.Port, base.Port),
		AuthUsername:     pick(overlay.AuthUsername, base.AuthUsername),
		AuthPasswordHash: pick(overlay.AuthPasswordHash, base.AuthPasswordHash),
		TokenTTL:         pick(overlay.TokenTTL, base.TokenTTL),
		JWTSecret:        pick(overlay.JWTSecret, base.JWTSecret),
		DisabledTools:    mergeStringSlice(base.DisabledTools, overlay.DisabledTools),
	}
}

// pick returns overlay if it is non-zero, else base.
func pick[T comparable](overlay, base T) T {
	var zero T
	if overlay != zero {
		return overlay
	}
	return base
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string{}, a...), b...) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
