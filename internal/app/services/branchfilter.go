package services

import (
	"strings"

	"github.com/chmouel/lazycommit/internal/models"
)

// SimplifyBranchName strips remote prefixes so local and remote
// spellings of the same branch collapse together.
func SimplifyBranchName(name string) string {
	name = strings.TrimPrefix(name, "remotes/")
	name = strings.TrimPrefix(name, "origin/")
	return name
}

// MatchBranches filters branches by a case-insensitive substring query.
// Remote branches only participate in substring matching when the query
// itself starts with origin/; exact matches always qualify. Results are
// deduplicated by simplified name, first entry winning, so with the
// locals-first ordering of ListBranches a local branch shadows its
// remote counterpart.
func MatchBranches(branches []models.Branch, query string) []models.Branch {
	q := strings.ToLower(strings.TrimSpace(query))
	queryTargetsRemote := strings.HasPrefix(q, "origin/")
	seen := make(map[string]struct{})
	var out []models.Branch
	for _, b := range branches {
		name := strings.ToLower(b.Name)
		exact := name == q || SimplifyBranchName(name) == q
		if q != "" && !exact {
			if !strings.Contains(name, q) {
				continue
			}
			if b.IsRemote && !queryTargetsRemote {
				continue
			}
		}
		key := SimplifyBranchName(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, b)
	}
	return out
}
