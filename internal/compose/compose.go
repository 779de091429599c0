// Package compose builds commit messages and branch names from the pieces the
// user selected. Everything here is a pure function: same inputs, same bytes
// out, no repository access.
package compose

import (
	"fmt"
	"regexp"
	"strings"
)

// CommitMessage assembles the final commit message.
// With a story number the shape is "prefix storyPrefix+story: text", e.g.
// "feat: JIRA-123: add login". Without one it is "prefix text". An absent
// storyPrefix with a present story uses the bare number as the segment.
func CommitMessage(prefix, storyPrefix, story, text string) string {
	if story != "" {
		return strings.TrimSpace(fmt.Sprintf("%s %s%s: %s", prefix, storyPrefix, story, text))
	}
	return strings.TrimSpace(fmt.Sprintf("%s %s", prefix, text))
}

// BranchName assembles a branch name such as "feat/JIRA-456/user-auth" or,
// without a story, "fix/bug". The prefix and name segments are lower-cased;
// the story segment keeps the ticket tag's case. Empty segments collapse so
// the result never carries dangling slashes. The caller sanitizes name (see
// SanitizeBranchSegment); this function only joins.
func BranchName(prefix, storyPrefix, story, name string) string {
	segments := make([]string, 0, 3)
	if p := strings.ToLower(strings.TrimSpace(prefix)); p != "" {
		segments = append(segments, p)
	}
	if story != "" {
		segments = append(segments, storyPrefix+story)
	}
	if n := strings.ToLower(strings.TrimSpace(name)); n != "" {
		segments = append(segments, n)
	}
	return strings.Join(segments, "/")
}

// ResolvePrefix turns a selected commit prefix into the effective one.
// Selecting the configured story prefix itself (say "JIRA-") means "use the
// ticket from my branch": the branch name is scanned for storyPrefix followed
// by digits and the match becomes the prefix, colon-terminated ("JIRA-123:").
// A branch without a ticket falls back to the selection verbatim. Any other
// selection passes through untouched.
func ResolvePrefix(selected, storyPrefix, branch string) string {
	if storyPrefix == "" || selected != storyPrefix {
		return selected
	}
	re, err := regexp.Compile(regexp.QuoteMeta(storyPrefix) + `\d+`)
	if err != nil {
		return selected
	}
	ticket := re.FindString(branch)
	if ticket == "" {
		return selected
	}
	return ticket + ":"
}

// StoryFromBranch extracts the bare story number from a branch name, given
// the configured story prefix. "feat/JIRA-456/user-auth" with prefix "JIRA-"
// yields "456". Returns "" when the branch carries no ticket.
func StoryFromBranch(branch, storyPrefix string) string {
	if storyPrefix == "" {
		return ""
	}
	re, err := regexp.Compile(regexp.QuoteMeta(storyPrefix) + `(\d+)`)
	if err != nil {
		return ""
	}
	m := re.FindStringSubmatch(branch)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// IsStoryNumber reports whether s is a valid story input: digits only.
// The empty string is valid (no story).
func IsStoryNumber(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// SanitizeBranchSegment normalises free text into something git accepts as a
// refname segment: lower-cased, whitespace runs become single dashes, and
// characters outside [a-z0-9._-] are dropped. Leading and trailing dashes and
// dots are trimmed since git rejects them at segment edges.
func SanitizeBranchSegment(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Join(strings.Fields(s), "-")
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "-.")
}
