package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/config"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestAskPrintsReplyAndRule(t *testing.T) {
	stdout, stderr, err := execute(t, "ask", "What", "are", "your", "skills?")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Python")
	assert.Contains(t, stderr, "[rule: skills]")
}

func TestAskJSON(t *testing.T) {
	stdout, _, err := execute(t, "ask", "--json", "Tell me about the Smart Helmet project")
	require.NoError(t, err)

	var res struct {
		Response string   `json:"response"`
		Rule     string   `json:"rule"`
		Project  string   `json:"project"`
		Sources  []string `json:"sources"`
		DelayMS  int64    `json:"delay_ms"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	assert.Equal(t, "project", res.Rule)
	assert.Equal(t, "Smart Helmet", res.Project)
	assert.Equal(t, []string{"projects"}, res.Sources)
	assert.Contains(t, res.Response, "patent")
	assert.GreaterOrEqual(t, res.DelayMS, int64(800))
}

func TestAskWithoutArgsIsTooBrief(t *testing.T) {
	stdout, stderr, err := execute(t, "ask")
	require.NoError(t, err)
	assert.NotEmpty(t, stdout)
	assert.Contains(t, stderr, "[rule: too_short]")
}

func TestProfileValidateDefault(t *testing.T) {
	stdout, _, err := execute(t, "profile", "validate")
	require.NoError(t, err)
	assert.Contains(t, stdout, "profile OK: Aarav Mehta")
}

func TestProfileValidateRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: \"\"\n"), 0o644))

	_, _, err := execute(t, "profile", "validate", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestProfileShowYAMLAndJSON(t *testing.T) {
	stdout, _, err := execute(t, "profile", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "name: Aarav Mehta")

	stdout, _, err = execute(t, "profile", "show", "--json")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"name": "Aarav Mehta"`)
}

func TestConfigFlag(t *testing.T) {
	t.Setenv("PORT", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 0\n"), 0o644))

	_, _, err := execute(t, "--config", path, "ask", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
}

func TestPacingFromConfig(t *testing.T) {
	p := pacingFrom(config.Default().Chat)
	assert.Equal(t, 600*time.Millisecond, p.Base)
	assert.Equal(t, 4*time.Millisecond, p.PerRune)
	assert.Equal(t, 800*time.Millisecond, p.Min)
	assert.Equal(t, 2500*time.Millisecond, p.Max)
}
