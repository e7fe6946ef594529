package process

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Real terminations are covered by the PDF export integration tests.

func TestKillProcessGroup_IgnoresNonPositivePID(t *testing.T) {
	t.Parallel()

	for _, pid := range []int{0, -1} {
		assert.NotPanics(t, func() { KillProcessGroup(pid) })
	}
	_, err := os.Getwd()
	assert.NoError(t, err, "current process still alive")
}

func TestKillProcessGroup_UnknownPID(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() { KillProcessGroup(999999999) })
}
