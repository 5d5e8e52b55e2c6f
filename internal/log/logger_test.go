package log

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLoggerInstanceFromContext_PrefersInjectedLogger(t *testing.T) {
	injected := NewLoggerWithJSONOutput()
	ctx := ContextWithLogger(context.Background(), injected)

	assert.Same(t, injected, GetLoggerInstanceFromContext(ctx, NewLoggerWithJSONOutput()))
}

func TestGetLoggerInstanceFromContext_FallbackCarriesCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	ctx := context.WithValue(context.Background(), CorrelatedIDKey, "req-42")

	GetLoggerInstanceFromContext(ctx, NewLogger(&buf)).Info("hello")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "req-42", record["correlation_id"])
	assert.Equal(t, "hello", record["msg"])
}

func TestGetOrGenerateCorrelationID_GeneratesWhenMissing(t *testing.T) {
	id := GetOrGenerateCorrelationID(context.Background())
	assert.Len(t, id, 36)
}
