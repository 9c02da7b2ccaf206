package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLogSummaryOmitsSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	logSummary(&Config{
		RunAddress:        ":8080",
		BackendAPIAddress: "http://backend",
		DatabaseURI:       "postgres://qa:pw@db/qa",
		JWTSecret:         defaultJWTSecret,
		OperatorPassword:  "hunter2",
		RefreshInterval:   time.Minute,
	}, logger)

	require.NotContains(t, buf.String(), "hunter2")
	require.NotContains(t, buf.String(), "postgres://")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	require.Equal(t, "configuration loaded", record["msg"])
	require.Equal(t, true, record["database"])
	require.Equal(t, true, record["default_secret"])
	require.Equal(t, "http://backend", record["backend"])
}
