package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI with args and returns stdout, stderr and the error.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd(&stdout, &stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestInit_WritesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	out, _, err := run(t, "init", "--space", "ws")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+filepath.Join("ws", "config.json"))
	assert.Contains(t, out, "Repository store: "+filepath.Join("ws", "repositories"))

	assert.FileExists(t, filepath.Join("ws", "config.json"))
	assert.DirExists(t, filepath.Join("ws", "repositories"))
}

func TestInit_Idempotent(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := run(t, "init", "--space", "ws")
	require.NoError(t, err)
	first, err := os.ReadFile(filepath.Join("ws", "config.json"))
	require.NoError(t, err)

	out, _, err := run(t, "init", "--space", "ws")
	require.NoError(t, err)
	assert.Contains(t, out, "Kept existing")

	second, err := os.ReadFile(filepath.Join("ws", "config.json"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestInit_ForceOverwrites(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := run(t, "init", "--space", "ws")
	require.NoError(t, err)
	path := filepath.Join("ws", "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"1.0.0","paths":{"space":"ws","config":"config.json","repositories":"repositories"},"ssh":{"hostName":"example.com","user":"git","identityFile":"/k"},"repositories":[],"sync":{"enabled":false,"cron":""}}`), 0o644))

	out, _, err := run(t, "init", "--space", "ws", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"hostName": "github.com"`)
}

func TestRoot_InvalidLogFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "level", args: []string{"status", "--log-level", "loud"}, want: "invalid --log-level"},
		{name: "format", args: []string{"status", "--log-format", "xml"}, want: "invalid --log-format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			_, _, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRoot_JSONLogs(t *testing.T) {
	t.Chdir(t.TempDir())

	_, stderr, err := run(t, "init", "--space", "ws", "--log-format", "json")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"msg":"wrote configuration"`)
}

func TestStatus_MissingConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := run(t, "status", "--space", "nowhere")
	require.Error(t, err)
}
