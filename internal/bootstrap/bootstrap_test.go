package bootstrap

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/osse101/TriCard_Go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupLogs_KeepsNewest(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		name := fmt.Sprintf(LogFileNamePattern, base.Add(time.Duration(i)*time.Hour).Format(LogFileTimestampFormat))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0600))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0600))

	cleanupLogs(dir, 9)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var logs []string
	for _, e := range entries {
		if filepath.Ext(e.Name()) == LogFileExtension {
			logs = append(logs, e.Name())
		}
	}
	assert.Len(t, logs, 9)
	assert.NotContains(t, logs, fmt.Sprintf(LogFileNamePattern, base.Format(LogFileTimestampFormat)))
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
}

func TestSetupLogger_WritesToStdoutAndFile(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{LogDir: dir, LogLevel: "debug", LogFormat: "json", ServiceName: "tricard", Version: "test", Environment: "test"}
	var stdout bytes.Buffer

	f, err := setupLogger(cfg, &stdout, time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC))
	require.NoError(t, err)
	defer f.Close()

	assert.Contains(t, stdout.String(), LogMsgLoggingInitialized)
	data, err := os.ReadFile(filepath.Join(dir, "session_2026-03-04_05-06-07.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), LogMsgStartingService)
}

func TestInitializeStorage_Memory(t *testing.T) {
	storage, err := InitializeStorage(context.Background(), &config.Config{StorageDriver: config.StorageDriverMemory})
	require.NoError(t, err)
	defer storage.Close()

	assert.NotNil(t, storage.Rooms)
	assert.NotNil(t, storage.Members)
	assert.NotNil(t, storage.Ledger)
	assert.Nil(t, storage.DBPool())
}

func TestInitializeStorage_UnknownDriver(t *testing.T) {
	_, err := InitializeStorage(context.Background(), &config.Config{StorageDriver: "sqlite"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgUnknownStorageKind)
}

func TestInitializeEventSystem(t *testing.T) {
	bus, err := InitializeEventSystem()
	require.NoError(t, err)
	assert.NotNil(t, bus)
}

func TestGracefulShutdown_ToleratesMissingComponents(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	GracefulShutdown(ctx, ShutdownComponents{})
}
