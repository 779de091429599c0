// Package models defines the data objects shared across lazycommit packages.
package models

// ChangeKind classifies how a changed file differs from HEAD.
type ChangeKind string

// Change kinds, matching the single-letter markers shown in the review list.
const (
	ChangeAdded    ChangeKind = "A"
	ChangeModified ChangeKind = "M"
	ChangeDeleted  ChangeKind = "D"
)

// ChangedFile is one candidate entry of the staging review list.
type ChangedFile struct {
	Path    string
	Kind    ChangeKind
	Staged  bool
	OldPath string // For renames: the path the file moved from
}

// Untracked reports whether the file is new and unknown to the index.
// Untracked files need a --no-index diff since HEAD has nothing to compare.
func (f ChangedFile) Untracked() bool {
	return f.Kind == ChangeAdded && !f.Staged
}

// Branch is one entry of the branch search list.
type Branch struct {
	Name      string // display name, leading remotes/ stripped
	Ref       string // name as reported by git branch -a
	IsRemote  bool
	IsCurrent bool
}
