package completion

import "github.com/chmouel/lazycommit/internal/theme"

// FlagInfo contains metadata about a command-line flag for completion generation.
type FlagInfo struct {
	Name        string   // Flag name without dashes
	Alias       string   // Single-letter alias without dash, empty if none
	Description string   // Human-readable description
	HasValue    bool     // true for string flags, false for bool flags
	ValueHint   string   // Hint for value type (e.g., "TEXT", "DIR", "NAME")
	Values      []string // Enumerated values for completion (e.g., theme names)
}

// GetFlags returns metadata for all lazycommit command-line flags.
// This is the single source of truth for shell completion generation.
func GetFlags() []FlagInfo {
	return []FlagInfo{
		{
			Name:        "message",
			Alias:       "m",
			Description: "Commit message, skips the message screen",
			HasValue:    true,
			ValueHint:   "TEXT",
		},
		{
			Name:        "prefix",
			Alias:       "p",
			Description: "Commit prefix, skips prefix selection",
			HasValue:    true,
			ValueHint:   "PREFIX",
		},
		{
			Name:        "story",
			Alias:       "S",
			Description: "Story number for the ticket reference",
			HasValue:    true,
			ValueHint:   "NUMBER",
		},
		{
			Name:        "extensions",
			Alias:       "e",
			Description: "Stage files with these extensions before review",
			HasValue:    true,
			ValueHint:   "EXT,EXT",
		},
		{
			Name:        "directory",
			Alias:       "d",
			Description: "Stage files under this directory before review",
			HasValue:    true,
			ValueHint:   "DIR",
		},
		{
			Name:        "no-push",
			Description: "Do not push after committing",
		},
		{
			Name:        "branch",
			Alias:       "b",
			Description: "Create a branch instead of committing",
		},
		{
			Name:        "branch-prefix",
			Description: "Branch prefix for direct branch creation",
			HasValue:    true,
			ValueHint:   "PREFIX",
		},
		{
			Name:        "branch-name",
			Description: "Branch name for direct branch creation",
			HasValue:    true,
			ValueHint:   "NAME",
		},
		{
			Name:        "search",
			Alias:       "s",
			Description: "Search and switch branches",
		},
		{
			Name:        "config",
			Alias:       "c",
			Description: "Path to configuration file",
			HasValue:    true,
			ValueHint:   "FILE",
		},
		{
			Name:        "theme",
			Alias:       "t",
			Description: "Override the UI theme",
			HasValue:    true,
			ValueHint:   "NAME",
			Values:      theme.AvailableThemes(),
		},
		{
			Name:        "debug",
			Description: "Write a debug log to the state directory",
		},
		{
			Name:        "version",
			Alias:       "v",
			Description: "Print version information",
		},
	}
}
