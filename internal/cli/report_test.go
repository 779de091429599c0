package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/chmouel/lazycommit/internal/app"
)

func TestReportResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		res        app.Result
		wantCode   int
		wantStdout []string
		wantStderr []string
	}{
		{
			name: "committed and pushed",
			res: app.Result{
				Outcome:  app.OutcomeCommitted,
				CommitID: "abc1234",
				Message:  "feat: add login",
				Pushed:   true,
			},
			wantCode:   0,
			wantStdout: []string{"Committed abc1234: feat: add login", "Pushed to origin."},
		},
		{
			name: "committed without push",
			res: app.Result{
				Outcome:  app.OutcomeCommitted,
				CommitID: "abc1234",
				Message:  "fix: crash",
			},
			wantCode:   0,
			wantStdout: []string{"Committed abc1234: fix: crash"},
		},
		{
			name: "branch created",
			res: app.Result{
				Outcome: app.OutcomeBranchCreated,
				Branch:  "feat/JIRA-456/user-auth",
			},
			wantCode:   0,
			wantStdout: []string{"Created branch feat/JIRA-456/user-auth"},
		},
		{
			name: "checked out",
			res: app.Result{
				Outcome: app.OutcomeCheckedOut,
				Branch:  "fix/crash",
			},
			wantCode:   0,
			wantStdout: []string{"Switched to branch fix/crash"},
		},
		{
			name:       "aborted",
			res:        app.Result{Outcome: app.OutcomeAborted},
			wantCode:   0,
			wantStdout: []string{"Aborted."},
		},
		{
			name: "failed",
			res: app.Result{
				Outcome: app.OutcomeFailed,
				Err:     errors.New("commit: nothing staged"),
			},
			wantCode:   1,
			wantStderr: []string{"Error: commit: nothing staged"},
		},
		{
			name: "push failure still reports the commit",
			res: app.Result{
				Outcome:  app.OutcomeFailed,
				CommitID: "abc1234",
				Message:  "feat: add login",
				Err:      errors.New("push: remote rejected"),
			},
			wantCode:   1,
			wantStdout: []string{"Committed abc1234: feat: add login"},
			wantStderr: []string{"Error: push: remote rejected"},
		},
		{
			name:       "no result",
			res:        app.Result{},
			wantCode:   1,
			wantStderr: []string{"session ended without a result"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stdout, stderr bytes.Buffer
			code := ReportResult(tt.res, &stdout, &stderr)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			for _, want := range tt.wantStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout %q missing %q", stdout.String(), want)
				}
			}
			for _, want := range tt.wantStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr %q missing %q", stderr.String(), want)
				}
			}
		})
	}
}
