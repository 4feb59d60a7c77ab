package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wikimetrics/editnet/internal/network"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "editnet.yml"), []byte(content), 0o644))
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, &ProjectConfig{}, cfg)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
networkType: talk
editLimit: 10
editorLimit: 5
timeLimitDays: 14
sectionFilter: true
startDate: "2004-05-01"
endDate: "2004-11-01"
windowDays: 30
dbPath: edits.db
verbose: true
`)
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "talk", cfg.NetworkType)
	assert.Equal(t, 10, cfg.EditLimit)
	assert.True(t, cfg.SectionFilter)
	assert.Equal(t, "edits.db", cfg.DBPath)
	assert.True(t, cfg.Verbose)
}

func TestLoad_BadYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "networkType: [unclosed")
	_, err := Load(dir)
	require.Error(t, err)
}

func TestBuildOptions(t *testing.T) {
	cfg := &ProjectConfig{NetworkType: "collaboration", EditorLimit: 3, TimeLimitDays: 7}
	opts := cfg.BuildOptions()
	assert.Equal(t, network.Collaboration, opts.Type)
	assert.Equal(t, 3, opts.EditorLimit)
	assert.Equal(t, 7*24*time.Hour, opts.TimeLimit)
}

func TestBuildOptions_DefaultType(t *testing.T) {
	opts := (&ProjectConfig{}).BuildOptions()
	assert.Equal(t, network.Coedit, opts.Type)
}

func TestWindowRange(t *testing.T) {
	cfg := &ProjectConfig{StartDate: "2004-05-01", EndDate: "2004-11-01", WindowDays: 30}
	start, end, window, err := cfg.WindowRange()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2004, 5, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2004, 11, 1, 0, 0, 0, 0, time.UTC), end)
	assert.Equal(t, 30*24*time.Hour, window)
}

func TestWindowRange_Defaults(t *testing.T) {
	cfg := &ProjectConfig{StartDate: "2004-05-01", EndDate: "2004-06-01"}
	_, _, window, err := cfg.WindowRange()
	require.NoError(t, err)
	assert.Equal(t, 30*24*time.Hour, window)

	_, _, _, err = (&ProjectConfig{}).WindowRange()
	require.Error(t, err)
}
