package oasderef

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

// setBuild overrides the ldflags-injected variables for one test.
func setBuild(t *testing.T, v, c, bt string) {
	t.Helper()
	oldV, oldC, oldBT := version, commit, buildTime
	version, commit, buildTime = v, c, bt
	t.Cleanup(func() { version, commit, buildTime = oldV, oldC, oldBT })
}

func TestBuildDetailsDefaults(t *testing.T) {
	setBuild(t, "dev", "unknown", "unknown")

	assert.Equal(t, "dev", Version())
	assert.Equal(t, "unknown", Commit())
	assert.Equal(t, "unknown", BuildTime())
	assert.Equal(t, runtime.Version(), GoVersion())
	assert.Equal(t, "oasderef/dev", UserAgent())
}

func TestBuildDetailsRelease(t *testing.T) {
	setBuild(t, "v0.4.1", "3f9c2ab", "2026-10-01T12:00:00Z")

	assert.Equal(t, "v0.4.1", Version())
	assert.Equal(t, "oasderef/v0.4.1", UserAgent())

	info := BuildInfo()
	assert.Contains(t, info, "Version: v0.4.1\n")
	assert.Contains(t, info, "Commit: 3f9c2ab\n")
	assert.Contains(t, info, "Build Time: 2026-10-01T12:00:00Z\n")
	assert.Contains(t, info, "Go Version: "+runtime.Version())
}
