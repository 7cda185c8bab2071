package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_Profiles(t *testing.T) {
	logger, err := New("production", "")
	require.NoError(t, err)
	assert.NotNil(t, logger)

	logger, err = New("development", "warn")
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = New("development", "verbose")
	assert.Error(t, err)
}

func TestContextCarriage(t *testing.T) {
	logger := zap.NewNop()
	ctx := WithLogger(context.Background(), logger)

	assert.Same(t, logger, FromContext(ctx))
}

func TestFromContext_MissingLoggerIsSafe(t *testing.T) {
	logger := FromContext(context.Background())

	require.NotNil(t, logger)
	// Must be usable without panicking.
	logger.Info("no-op")
}
