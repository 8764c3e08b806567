package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evodex/internal/config"
	"evodex/pkg/logger"
)

func TestInitTracingDisabled(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), logger.Nop(), config.TraceConfig{})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTracingStdout(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), logger.Nop(), config.TraceConfig{
		Enabled:     true,
		ServiceName: "evodex-test",
		SampleRatio: 1,
	})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
