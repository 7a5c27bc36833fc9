package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "igfollowers/pkg/errors"
	"igfollowers/pkg/result"
)

func TestSaveEnvelope(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	manager, err := NewManager(dir)
	require.NoError(t, err)
	assert.NoFileExists(t, manager.Path("natgeo", "method2"))

	env := result.Success("method2", []result.Row{result.Follower("alice", "Alice", "1")})
	path, err := manager.SaveEnvelope("natgeo", env)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "natgeo_method2.json"), path)
	assert.FileExists(t, manager.Path("natgeo", "method2"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &decoded))
	assert.Equal(t, true, decoded["success"])
	assert.Len(t, decoded["followers"], 1)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestSaveEnvelopeReplaces(t *testing.T) {
	manager, err := NewManager(t.TempDir())
	require.NoError(t, err)

	_, err = manager.SaveEnvelope("natgeo", result.Success("method5", nil))
	require.NoError(t, err)
	path, err := manager.SaveEnvelope("natgeo", result.Failure("method5", errs.AuthRequired(401)))
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"requires_login":true`)
	assert.NotContains(t, string(content), "followers")
}

func TestPathStaysInsideDirectory(t *testing.T) {
	dir := t.TempDir()
	manager, err := NewManager(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "_etc_passwd_auto.json"), manager.Path("/etc/passwd", "auto"))
	assert.Equal(t, filepath.Join(dir, "__method2.json"), manager.Path("..", "method2"))
}

func TestNewManagerEmptyDir(t *testing.T) {
	_, err := NewManager("")
	assert.Error(t, err)
}
