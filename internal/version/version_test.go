package version

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetBuildInfo(t *testing.T) {
	info := GetBuildInfo()

	assert.NotEmpty(t, info.Version)
	assert.NotEmpty(t, info.GitCommit)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
}

func TestGetShortVersionWithLdflags(t *testing.T) {
	origVersion, origCommit := Version, GitCommit
	defer func() { Version, GitCommit = origVersion, origCommit }()

	Version = "1.2.3"
	GitCommit = "abcdef1234567890"
	assert.Equal(t, "1.2.3 (abcdef1)", GetShortVersion())
	assert.True(t, IsRelease())

	Version = "dev"
	// GetVersion falls back to build info in dev builds; only the shape
	// matters here.
	assert.NotEmpty(t, GetShortVersion())
}

func TestParseISOTime(t *testing.T) {
	assert.True(t, parseISOTime("unknown").IsZero())
	assert.True(t, parseISOTime("").IsZero())
	assert.True(t, parseISOTime("not a time").IsZero())

	want := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	assert.Equal(t, want, parseISOTime("2024-06-01T12:30:00Z"))
	assert.Equal(t, want, parseISOTime("2024-06-01 12:30:00").UTC())
}
