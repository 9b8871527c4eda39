package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/tmsv2/tms-backend/pkg/env"
)

func TestSetup_FileSink(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "app.log")

	logger, cleanup := Setup(env.Local, path)
	require.NotNil(t, logger)
	require.NotNil(t, cleanup)

	logger.Info("hello from the file sink")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from the file sink")
}

func TestSetup_StdoutDefault(t *testing.T) {
	t.Parallel()

	logger, cleanup := Setup(env.Local, "")
	require.NotNil(t, logger)
	require.NotNil(t, cleanup)
	cleanup()
}
