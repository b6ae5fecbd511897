package observe

import (
	"errors"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-history/pkg/logger"
)

func newTestHook(env string) (*SentryHook, *[]*sentry.Event) {
	var captured []*sentry.Event
	h := &SentryHook{
		appEnv:  env,
		appName: "test-app",
		capture: func(e *sentry.Event) *sentry.EventID {
			captured = append(captured, e)
			return nil
		},
	}
	return h, &captured
}

func TestSentryHook_ForwardsErrors(t *testing.T) {
	hook, captured := newTestHook("prod")
	l := logger.New(logger.Options{AppName: "test-app", AppEnv: "prod"}, hook)

	l.Info("not forwarded")
	l.Error(errors.New("archive request failed"), map[string]any{"endpoint": "archive"})

	require.Len(t, *captured, 1)
	event := (*captured)[0]
	assert.Equal(t, "archive request failed", event.Message)
	assert.Equal(t, sentry.LevelError, event.Level)
	assert.Equal(t, "prod", event.Environment)
	assert.Equal(t, "archive request failed", event.Extra["Error"])
	assert.Equal(t, "test-app", event.Extra["AppName"])
	require.Len(t, event.Exception, 1)
}

func TestSentryHook_SkipsNonReportingEnv(t *testing.T) {
	hook, captured := newTestHook("local")

	n, err := hook.Write([]byte(`{"level":"error","msg":"boom"}`))
	require.NoError(t, err)
	assert.Equal(t, len(`{"level":"error","msg":"boom"}`), n)
	assert.Empty(t, *captured)
}

func TestSentryHook_ToleratesGarbage(t *testing.T) {
	hook, captured := newTestHook("dev")

	n, err := hook.Write([]byte("not json"))
	require.NoError(t, err)
	assert.Equal(t, len("not json"), n)
	assert.Empty(t, *captured)
}

func TestSentryHook_MapLevel(t *testing.T) {
	hook, _ := newTestHook("dev")
	assert.Equal(t, sentry.LevelFatal, hook.mapLevel(5))
	assert.Equal(t, sentry.LevelWarning, hook.mapLevel(1))
}
