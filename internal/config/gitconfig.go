package config

import (
	"os/exec"
	"strings"
)

// gitConfigMock allows tests to mock git config output.
var gitConfigMock func(args []string, repoPath string) (string, error)

// runGitConfig executes git config and returns raw output.
func runGitConfig(args []string, repoPath string) (string, error) {
	if gitConfigMock != nil {
		return gitConfigMock(args, repoPath)
	}

	cmd := exec.Command("git", args...)
	if repoPath != "" {
		cmd.Dir = repoPath
	}

	output, err := cmd.Output()
	if err != nil {
		// git config exits 1 when no key matches; that is not an error here.
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
			return "", nil
		}
		return "", err
	}
	return string(output), nil
}

// parseGitConfigOutput parses `git config --get-regexp` output into a
// multi-value map keyed without the "lc." prefix. Input lines look like
// "lc.story-prefix JIRA-"; values may contain spaces.
func parseGitConfigOutput(output string) map[string][]string {
	configMap := make(map[string][]string)
	if strings.TrimSpace(output) == "" {
		return configMap
	}

	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, " ", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimPrefix(parts[0], "lc.")
		configMap[key] = append(configMap[key], parts[1])
	}
	return configMap
}

// ApplyGitOverrides layers repository-local settings from `git config` over
// cfg. Recognised keys, all under the lc. section:
//
//	lc.story-prefix            story ticket tag for this repo
//	lc.auto-push               bool
//	lc.default-commit-prefix   pre-selected commit prefix
//	lc.theme                   theme name
//	lc.commit-prefix           repeatable; replaces the commit prefix list
//	lc.branch-prefix           repeatable; replaces the branch prefix list
//
// Unknown keys are ignored. Errors running git are returned so the caller can
// log them, but cfg is left usable either way.
func ApplyGitOverrides(cfg *AppConfig, repoPath string) error {
	output, err := runGitConfig([]string{"config", "--get-regexp", `^lc\.`}, repoPath)
	if err != nil {
		return err
	}

	values := parseGitConfigOutput(output)

	if v, ok := lastValue(values, "story-prefix"); ok {
		cfg.StoryPrefix = v
	}
	if v, ok := lastValue(values, "auto-push"); ok {
		cfg.AutoPush = coerceBool(v, cfg.AutoPush)
	}
	if v, ok := lastValue(values, "default-commit-prefix"); ok {
		cfg.DefaultCommitPrefix = v
	}
	if v, ok := lastValue(values, "theme"); ok {
		if normalized := NormalizeThemeName(v); normalized != "" {
			cfg.Theme = normalized
		}
	}
	if prefixes := values["commit-prefix"]; len(prefixes) > 0 {
		cfg.CommitPrefixes = prefixes
	}
	if prefixes := values["branch-prefix"]; len(prefixes) > 0 {
		cfg.BranchPrefixes = prefixes
	}

	return nil
}

// lastValue returns the last value for key; git config lists values in
// definition order and the last one wins, matching git's own semantics.
func lastValue(values map[string][]string, key string) (string, bool) {
	list := values[key]
	if len(list) == 0 {
		return "", false
	}
	return strings.TrimSpace(list[len(list)-1]), true
}
