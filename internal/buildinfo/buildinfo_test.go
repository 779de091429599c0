package buildinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetForwardsLinkerValues(t *testing.T) {
	Set("0.3.0", "f00dfeed", "2025-08-01", "goreleaser")

	assert.Equal(t, "0.3.0", Version())
	assert.Equal(t, "f00dfeed", Commit())
	assert.Equal(t, "2025-08-01", Date())
	assert.Equal(t, "goreleaser", BuiltBy())
}

func TestEnrichFillsUnknownBuilder(t *testing.T) {
	Set("dev", "none", "unknown", "unknown")
	Enrich()

	// runtime/debug.ReadBuildInfo always knows the Go version, so a
	// plain `go build` binary reports that instead of "unknown".
	assert.NotEqual(t, "unknown", BuiltBy())
}

func TestEnrichKeepsReleaseValues(t *testing.T) {
	Set("v1.0.0", "deadbeef", "2025-06-01", "goreleaser")
	Enrich()

	assert.Equal(t, "deadbeef", Commit())
	assert.Equal(t, "goreleaser", BuiltBy())
}
