package main

import (
	"bytes"
	"cerebro/internal/models"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	conf := fmt.Sprintf(`
timezone: UTC
storage:
  path: %[1]s/data/journal.db
backup:
  enabled: true
  filePath: %[1]s/journal.bak
  interval: 1h
logger:
  level: info
  mode: 0644
  dir: %[1]s
metrics:
  enabled: false
`, dir)
	path := filepath.Join(dir, "cerebro.yaml")
	require.NoError(t, os.WriteFile(path, []byte(conf), 0644))
	return path, dir
}

func run(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestCLI_AddListDelete(t *testing.T) {
	cfg, _ := writeTestConfig(t)

	out, err := run(t, cfg, "add", "--type", "mood", "--intensity", "6", "--dt", "2026-10-18T20:00", "--emotion", "calm")
	require.NoError(t, err)
	var created models.Event
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.Equal(t, "mood", created.Type)
	assert.Equal(t, 6, created.Intensity)
	assert.Equal(t, "2026-10-18T20:00:00.000Z", created.Dt.Format(models.TimeLayout))

	_, err = run(t, cfg, "add", "--type", "sleep", "--intensity", "3", "--sleep", "nope")
	require.NoError(t, err)

	out, err = run(t, cfg, "list", "--json", "--type", "mood")
	require.NoError(t, err)
	var listed []models.Event
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	out, err = run(t, cfg, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "calm")
	assert.Contains(t, out, "sleep")

	_, err = run(t, cfg, "delete", created.ID)
	require.NoError(t, err)
	_, err = run(t, cfg, "delete", created.ID)
	require.NoError(t, err)

	out, err = run(t, cfg, "list", "--type", "mood")
	require.NoError(t, err)
	assert.Contains(t, out, "No matching events.")
}

func TestCLI_AddRejectsBadInput(t *testing.T) {
	cfg, _ := writeTestConfig(t)

	_, err := run(t, cfg, "add", "--type", "mood", "--intensity", "high")
	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = run(t, cfg, "add", "--intensity", "4")
	assert.Error(t, err)
}

func TestCLI_Stats(t *testing.T) {
	cfg, _ := writeTestConfig(t)

	out, err := run(t, cfg, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "No data yet.")

	for _, i := range []string{"4", "5", "7"} {
		_, err = run(t, cfg, "add", "--type", "mood", "--intensity", i)
		require.NoError(t, err)
	}

	out, err = run(t, cfg, "stats", "--json")
	require.NoError(t, err)
	var summary models.Insights
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 3, summary.Last7Days)
	assert.Equal(t, 5.3, summary.AverageIntensity)
	assert.Equal(t, map[string]int{"mood": 3}, summary.CountsByType)
}

func TestCLI_ExportToDirectory(t *testing.T) {
	cfg, dir := writeTestConfig(t)
	_, err := run(t, cfg, "add", "--type", "mood", "--intensity", "2", "--notes", "a, \"quoted\" note")
	require.NoError(t, err)

	outDir := filepath.Join(dir, "exports")
	require.NoError(t, os.Mkdir(outDir, 0755))

	out, err := run(t, cfg, "export", "--format", "csv", "--out", outDir)
	require.NoError(t, err)
	path := strings.TrimSpace(out)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "cerebro-journal-"))
	assert.Equal(t, ".csv", filepath.Ext(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,dt,type,intensity,emotion,sleep,stress,state,notes,lat,lon,accuracy_m", lines[0])
	assert.Contains(t, lines[1], `"a, ""quoted"" note"`)
}

func TestCLI_ExportUnknownFormat(t *testing.T) {
	cfg, _ := writeTestConfig(t)
	_, err := run(t, cfg, "export", "--format", "xml")
	assert.Error(t, err)
}

func TestCLI_BackupAndRestore(t *testing.T) {
	cfg, dir := writeTestConfig(t)
	_, err := run(t, cfg, "add", "--type", "mood", "--intensity", "5")
	require.NoError(t, err)

	out, err := run(t, cfg, "backup")
	require.NoError(t, err)
	assert.Contains(t, out, "backed up 1 events")

	_, err = os.Stat(filepath.Join(dir, "journal.bak"))
	require.NoError(t, err)

	other := filepath.Join(dir, "other.bak")
	_, err = run(t, cfg, "backup", "--file", other)
	require.NoError(t, err)

	out, err = run(t, cfg, "restore", "--file", other)
	require.NoError(t, err)
	assert.Contains(t, out, "restored 1 events")

	out, err = run(t, cfg, "list", "--json")
	require.NoError(t, err)
	var listed []models.Event
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	assert.Len(t, listed, 1)
}

func TestCLI_MissingConfig(t *testing.T) {
	_, err := run(t, filepath.Join(t.TempDir(), "nope.yaml"), "list")
	assert.Error(t, err)
}
