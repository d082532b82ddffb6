package hostenv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemEnvSmoke(t *testing.T) {
	env := System{}
	assert.NotEmpty(t, env.Hostname(context.Background()))

	exe, err := env.Executable()
	require.NoError(t, err)
	assert.NotEmpty(t, exe)
}
