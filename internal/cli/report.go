package cli

import (
	"fmt"
	"io"

	"github.com/chmouel/lazycommit/internal/app"
)

// ReportResult prints the session outcome and returns the process exit
// code. Success and a plain abort exit 0; failures exit 1 with the
// detail on stderr. A commit that landed before a later failure is
// still reported so the id is not lost.
func ReportResult(res app.Result, stdout, stderr io.Writer) int {
	if res.CommitID != "" {
		fmt.Fprintf(stdout, "Committed %s: %s\n", res.CommitID, res.Message)
		if res.Pushed {
			fmt.Fprintln(stdout, "Pushed to origin.")
		}
	}

	switch res.Outcome {
	case app.OutcomeCommitted:
		return 0
	case app.OutcomeBranchCreated:
		fmt.Fprintf(stdout, "Created branch %s\n", res.Branch)
		return 0
	case app.OutcomeCheckedOut:
		fmt.Fprintf(stdout, "Switched to branch %s\n", res.Branch)
		return 0
	case app.OutcomeAborted:
		fmt.Fprintln(stdout, "Aborted.")
		return 0
	case app.OutcomeFailed:
		fmt.Fprintf(stderr, "Error: %v\n", res.Err)
		return 1
	default:
		fmt.Fprintln(stderr, "Error: session ended without a result")
		return 1
	}
}
