package service

import (
	"bizcanvas_backend/internal/config"
	"bizcanvas_backend/pkg/logger"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStorageServiceSelectsLocalProvider(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage = config.StorageConfig{Type: "local", LocalPath: t.TempDir()}

	svc := NewStorageService(cfg)
	assert.IsType(t, &LocalStorageProvider{}, svc.Provider)
}

func TestStorageServiceLogsMinioFailureAndFallsBack(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	prev := logger.Log
	logger.Log = zap.New(core)
	t.Cleanup(func() { logger.Log = prev })

	cfg := &config.Config{}
	cfg.Storage = config.StorageConfig{
		Type:          "minio",
		LocalPath:     t.TempDir(),
		MinioEndpoint: "not a valid endpoint",
	}

	svc := NewStorageService(cfg)

	assert.IsType(t, &LocalStorageProvider{}, svc.Provider)
	require.Equal(t, 1,
		logs.FilterMessage("minio storage init failed, falling back to local storage").Len())
}
