package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDatagenThenPaths(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	path := filepath.Join(t.TempDir(), "network.yaml")

	_, err := execute(t, "datagen",
		"--users", "6",
		"--contacts-per-user", "4",
		"--teams", "2",
		"--team-size", "3",
		"--seed", "11",
		"--out", path,
	)
	require.NoError(t, err)

	out, err := execute(t, "paths", "--dataset", path, "--user", "USR-00001", "--target", "CON-00001-001")
	require.NoError(t, err)

	var result struct {
		TargetID         string            `json:"targetId"`
		DirectConnection bool              `json:"directConnection"`
		Paths            []json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "CON-00001-001", result.TargetID)
	assert.NotEmpty(t, result.Paths)
}

func TestPathsRequiresExactlyOneTarget(t *testing.T) {
	_, err := execute(t, "paths", "--dataset", "unused.yaml", "--user", "U1")
	require.Error(t, err)

	_, err = execute(t, "paths", "--dataset", "unused.yaml", "--user", "U1", "--target", "C1", "--query", "bob")
	require.Error(t, err)
}

func TestParseAllowedOrigins(t *testing.T) {
	assert.Nil(t, parseAllowedOrigins(""))
	assert.Equal(t, []string{"http://a", "http://b"}, parseAllowedOrigins(" http://a, ,http://b "))
}
