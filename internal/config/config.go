// Package config loads the lazycommit configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/chmouel/lazycommit/internal/theme"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig marks configuration that parsed fine but cannot be used.
// Callers match it with errors.Is.
var ErrInvalidConfig = errors.New("invalid configuration")

// AppConfig defines the resolved lazycommit configuration.
type AppConfig struct {
	CommitPrefixes      []string // Ordered choices for the commit prefix screen
	BranchPrefixes      []string // Ordered choices for the branch prefix screen
	StoryPrefix         string   // Ticket tag, e.g. "JIRA-"; also the ticket pseudo-prefix
	AutoPush            bool     // Push after a successful commit
	DefaultCommitPrefix string   // Pre-selected commit prefix; must be listed in CommitPrefixes
	Theme               string   // Theme name: see AvailableThemes in internal/theme
	DebugLog            string   // Debug log path; empty disables unless --debug is given
	AutoRefreshDiff     bool     // Watch the worktree and refresh the diff preview
	ShowIcons           bool     // Render Nerd Font icons in the file list
}

// DefaultConfig returns the default configuration values.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		CommitPrefixes: []string{
			"feat:", "fix:", "docs:", "style:", "refactor:", "test:", "ci:", "chore:",
		},
		BranchPrefixes: []string{
			"build", "chore", "ci", "docs", "feat", "fix", "perf", "refactor", "revert", "style", "test",
		},
		AutoPush:        true,
		AutoRefreshDiff: true,
		ShowIcons:       true,
	}
}

// Validate checks the resolved configuration for the conditions the screens
// cannot recover from: empty prefix lists and a default prefix that is not in
// the list. Returned errors wrap ErrInvalidConfig.
func (c *AppConfig) Validate() error {
	if len(c.CommitPrefixes) == 0 {
		return fmt.Errorf("%w: commit_prefixes must not be empty", ErrInvalidConfig)
	}
	if len(c.BranchPrefixes) == 0 {
		return fmt.Errorf("%w: branch_prefixes must not be empty", ErrInvalidConfig)
	}
	if c.DefaultCommitPrefix != "" && !slices.Contains(c.CommitPrefixes, c.DefaultCommitPrefix) {
		return fmt.Errorf("%w: default_commit_prefix %q is not one of commit_prefixes",
			ErrInvalidConfig, c.DefaultCommitPrefix)
	}
	return nil
}

// DefaultCommitIndex returns the index of DefaultCommitPrefix within
// CommitPrefixes, or 0 when none is configured.
func (c *AppConfig) DefaultCommitIndex() int {
	if c.DefaultCommitPrefix == "" {
		return 0
	}
	if i := slices.Index(c.CommitPrefixes, c.DefaultCommitPrefix); i >= 0 {
		return i
	}
	return 0
}

// normalizeStringList converts YAML scalar-or-sequence input to a string list.
func normalizeStringList(value any) []string {
	if value == nil {
		return nil
	}

	switch v := value.(type) {
	case string:
		text := strings.TrimSpace(v)
		if text == "" {
			return nil
		}
		return []string{text}
	case []any:
		items := []string{}
		for _, item := range v {
			if item == nil {
				continue
			}
			text := strings.TrimSpace(fmt.Sprintf("%v", item))
			if text != "" {
				items = append(items, text)
			}
		}
		return items
	}
	return nil
}

func coerceBool(value any, defaultVal bool) bool {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case string:
		text := strings.ToLower(strings.TrimSpace(v))
		switch text {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return defaultVal
}

func parseConfig(data map[string]any) *AppConfig {
	cfg := DefaultConfig()

	if prefixes := normalizeStringList(data["commit_prefixes"]); prefixes != nil {
		cfg.CommitPrefixes = prefixes
	}
	if prefixes := normalizeStringList(data["branch_prefixes"]); prefixes != nil {
		cfg.BranchPrefixes = prefixes
	}

	if storyPrefix, ok := data["story_prefix"].(string); ok {
		cfg.StoryPrefix = strings.TrimSpace(storyPrefix)
	}
	if defaultPrefix, ok := data["default_commit_prefix"].(string); ok {
		cfg.DefaultCommitPrefix = strings.TrimSpace(defaultPrefix)
	}
	if debugLog, ok := data["debug_log"].(string); ok {
		path := strings.TrimSpace(debugLog)
		if expanded, err := expandPath(path); err == nil {
			path = expanded
		}
		cfg.DebugLog = path
	}

	cfg.AutoPush = coerceBool(data["auto_push"], true)
	cfg.AutoRefreshDiff = coerceBool(data["auto_refresh_diff"], true)
	cfg.ShowIcons = coerceBool(data["show_icons"], true)

	if themeName, ok := data["theme"].(string); ok {
		if normalized := NormalizeThemeName(themeName); normalized != "" {
			cfg.Theme = normalized
		}
	}

	return cfg
}

func getConfigDir() string {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

// DefaultConfigPath returns the path the default configuration is written to
// on first run.
func DefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "lazycommit", "config.yaml")
}

// LoadConfig reads the application configuration from a YAML file. With an
// empty configPath the XDG locations are tried and, when none exists yet, the
// default configuration is written there first (so the user has a file to
// edit) and returned. An explicit configPath must exist and parse.
func LoadConfig(configPath string) (*AppConfig, error) {
	if configPath != "" {
		expanded, err := expandPath(configPath)
		if err != nil {
			return DefaultConfig(), err
		}
		data, err := os.ReadFile(expanded) // #nosec G304 -- the user chose the path
		if err != nil {
			return DefaultConfig(), fmt.Errorf("read config %s: %w", configPath, err)
		}
		return parseConfigBytes(data, expanded)
	}

	configBase := filepath.Join(getConfigDir(), "lazycommit")
	paths := []string{
		filepath.Join(configBase, "config.yaml"),
		filepath.Join(configBase, "config.yml"),
	}

	for _, path := range paths {
		data, err := os.ReadFile(path) // #nosec G304 -- fixed XDG locations
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return DefaultConfig(), fmt.Errorf("read config %s: %w", path, err)
		}
		return parseConfigBytes(data, path)
	}

	// First run: persist the defaults so the user has something to edit.
	cfg := DefaultConfig()
	if err := writeDefault(paths[0]); err != nil {
		// Not fatal; the session still runs on defaults.
		return cfg, nil
	}
	return cfg, nil
}

func parseConfigBytes(data []byte, path string) (*AppConfig, error) {
	var yamlData map[string]any
	if err := yaml.Unmarshal(data, &yamlData); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}
	return parseConfig(yamlData), nil
}

// fileConfig mirrors AppConfig with YAML tags; used only for writing the
// default file so the keys come out in a stable, documented order.
type fileConfig struct {
	CommitPrefixes      []string `yaml:"commit_prefixes"`
	BranchPrefixes      []string `yaml:"branch_prefixes"`
	StoryPrefix         string   `yaml:"story_prefix,omitempty"`
	AutoPush            bool     `yaml:"auto_push"`
	DefaultCommitPrefix string   `yaml:"default_commit_prefix,omitempty"`
	Theme               string   `yaml:"theme,omitempty"`
	AutoRefreshDiff     bool     `yaml:"auto_refresh_diff"`
	ShowIcons           bool     `yaml:"show_icons"`
}

func writeDefault(path string) error {
	cfg := DefaultConfig()
	out, err := yaml.Marshal(&fileConfig{
		CommitPrefixes:  cfg.CommitPrefixes,
		BranchPrefixes:  cfg.BranchPrefixes,
		AutoPush:        cfg.AutoPush,
		AutoRefreshDiff: cfg.AutoRefreshDiff,
		ShowIcons:       cfg.ShowIcons,
	})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o600)
}

func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return os.ExpandEnv(path), nil
}

// NormalizeThemeName returns the canonical theme name if it is supported.
func NormalizeThemeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if slices.Contains(theme.AvailableThemes(), name) {
		return name
	}
	return ""
}
