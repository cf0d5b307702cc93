package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Domenick1991/airbooking-client/config"
	"github.com/Domenick1991/airbooking-client/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestOpenSessionStore_File(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{Session: config.SessionConfig{Driver: config.SessionDriverFile, Path: dir, Key: config.DefaultSessionKey}}

	store, closeFn, err := OpenSessionStore(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer closeFn()

	require.NoError(t, store.Set(context.Background(), domain.Session{AccessToken: "t"}))
	assert.FileExists(t, filepath.Join(dir, "auth_session.json"))
}

func TestOpenSessionStore_UnknownDriver(t *testing.T) {
	cfg := &config.Config{Session: config.SessionConfig{Driver: "etcd"}}
	_, _, err := OpenSessionStore(context.Background(), cfg, zaptest.NewLogger(t))
	assert.ErrorContains(t, err, "unknown session driver")
}
