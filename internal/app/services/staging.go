package services

import (
	"github.com/chmouel/lazycommit/internal/models"
)

// StagingList holds the candidate files of a review session and the
// cursor over them. The path set is fixed at construction; only the
// staged flags change afterwards.
type StagingList struct {
	files  []models.ChangedFile
	cursor int
}

// NewStagingList creates a staging list over the given files.
func NewStagingList(files []models.ChangedFile) *StagingList {
	return &StagingList{files: files}
}

// Len returns the number of candidate files.
func (l *StagingList) Len() int {
	return len(l.files)
}

// Files returns all candidate files in list order.
func (l *StagingList) Files() []models.ChangedFile {
	return l.files
}

// Cursor returns the current cursor position.
func (l *StagingList) Cursor() int {
	return l.cursor
}

// Current returns the file under the cursor.
func (l *StagingList) Current() (models.ChangedFile, bool) {
	if l.cursor < 0 || l.cursor >= len(l.files) {
		return models.ChangedFile{}, false
	}
	return l.files[l.cursor], true
}

// MoveUp moves the cursor up, stopping at the first entry.
func (l *StagingList) MoveUp() {
	if l.cursor > 0 {
		l.cursor--
	}
}

// MoveDown moves the cursor down, stopping at the last entry.
func (l *StagingList) MoveDown() {
	if l.cursor < len(l.files)-1 {
		l.cursor++
	}
}

// Toggle flips the staged flag of the file under the cursor and returns
// the file in its new state.
func (l *StagingList) Toggle() (models.ChangedFile, bool) {
	if l.cursor < 0 || l.cursor >= len(l.files) {
		return models.ChangedFile{}, false
	}
	l.files[l.cursor].Staged = !l.files[l.cursor].Staged
	return l.files[l.cursor], true
}

// SetStaged reconciles the flag for a path with the real index, used
// when a stage or unstage command failed after an optimistic toggle.
func (l *StagingList) SetStaged(path string, staged bool) {
	for i := range l.files {
		if l.files[i].Path == path {
			l.files[i].Staged = staged
			return
		}
	}
}

// StagedFiles returns the staged subsequence in list order.
func (l *StagingList) StagedFiles() []models.ChangedFile {
	var staged []models.ChangedFile
	for _, f := range l.files {
		if f.Staged {
			staged = append(staged, f)
		}
	}
	return staged
}

// StagedPaths returns the paths of the staged files in list order.
func (l *StagingList) StagedPaths() []string {
	var paths []string
	for _, f := range l.files {
		if f.Staged {
			paths = append(paths, f.Path)
		}
	}
	return paths
}

// IsEmpty reports whether nothing is staged.
func (l *StagingList) IsEmpty() bool {
	for _, f := range l.files {
		if f.Staged {
			return false
		}
	}
	return true
}
