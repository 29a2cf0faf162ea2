package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger() (*logrus.Logger, *bytes.Buffer) {
	logger := SetupLogging()
	buf := &bytes.Buffer{}
	logger.Out = buf
	return logger, buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	dec := json.NewDecoder(buf)
	for dec.More() {
		line := map[string]any{}
		require.NoError(t, dec.Decode(&line))
		lines = append(lines, line)
	}
	return lines
}

func TestSetupLogging_LevelKey(t *testing.T) {
	logger, buf := newBufferedLogger()
	logger.Info("hello")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "info", lines[0]["loglevel"])
}

func TestApplyLevel(t *testing.T) {
	logger := SetupLogging()

	assert.NoError(t, ApplyLevel(logger, "debug"))
	assert.Equal(t, logrus.DebugLevel, logger.Level)
	assert.Error(t, ApplyLevel(logger, "loud"))
}

func TestGetLogData_Absent(t *testing.T) {
	assert.Nil(t, GetLogData(context.Background()))
}

func TestLogData_Fields(t *testing.T) {
	logger, buf := newBufferedLogger()
	logData := NewLogData(logger)
	logData.AddData("count", 2)
	logData.AddTiming("parseMs")()

	logData.Log().Info("done")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.EqualValues(t, 2, lines[0]["count"])
	assert.Contains(t, lines[0], "parseMs")
}

func TestLoggingWrapper_PerRequestData(t *testing.T) {
	logger, buf := newBufferedLogger()
	calls := 0
	handler := LoggingWrapper("Test", logger, func(w http.ResponseWriter, req *http.Request, logData *LogData) error {
		calls++
		assert.Same(t, logData, GetLogData(req.Context()))
		if calls == 1 {
			logData.AddData("first", true)
			return nil
		}
		return errors.New("boom")
	})

	handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	lines := decodeLines(t, buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "Handler.Test.Complete", lines[0]["msg"])
	assert.Equal(t, "Handler.Test.Error", lines[1]["msg"])
	assert.NotContains(t, lines[1], "first", "log data must not leak between requests")
}

func TestMiddleware_Huma(t *testing.T) {
	logger, buf := newBufferedLogger()
	_, api := humatest.New(t)
	api.UseMiddleware(Middleware(logger))

	huma.Register(api, huma.Operation{
		OperationID: "ping",
		Method:      http.MethodGet,
		Path:        "/ping",
	}, func(ctx context.Context, _ *struct{}) (*struct{}, error) {
		logData := GetLogData(ctx)
		require.NotNil(t, logData)
		logData.AddData("pinged", true)
		return nil, nil
	})

	resp := api.Get("/ping")
	assert.Equal(t, http.StatusNoContent, resp.Code)

	lines := decodeLines(t, buf)
	require.NotEmpty(t, lines)
	last := lines[len(lines)-1]
	assert.Equal(t, "Handler.ping.Complete", last["msg"])
	assert.Equal(t, true, last["pinged"])
}
