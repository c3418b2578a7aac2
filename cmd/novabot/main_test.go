package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novabot/internal/corpus"
)

func runApp(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	app := newApp()
	var out bytes.Buffer
	app.Writer = &out
	app.Reader = strings.NewReader(stdin)
	cfg := filepath.Join(t.TempDir(), "missing.yaml")
	base := []string{"novabot", "--config", cfg, "--log-level", "error"}
	err := app.Run(append(base, args...))
	return out.String(), err
}

func TestAskCommand(t *testing.T) {
	out, err := runApp(t, "", "ask", "How", "do", "I", "reset", "my", "password?")
	require.NoError(t, err)
	assert.Contains(t, out, "Forgot Password")

	out, err = runApp(t, "", "ask", "-v", "is novabank safe")
	require.NoError(t, err)
	assert.Contains(t, out, "Q: Is NovaBank safe?")
	assert.Contains(t, out, "score: ")

	_, err = runApp(t, "", "ask")
	assert.Error(t, err)
}

func TestAskCommand_CorpusFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faq.txt")
	text := "Q: How do I check my balance?\nA: Check via app or text BAL to 29292.\n\nQ: How do I apply for a loan?\nA: Apply online or via the app.\n"
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))

	out, err := runApp(t, "", "--corpus", path, "ask", "what's my balance")
	require.NoError(t, err)
	assert.Equal(t, "Check via app or text BAL to 29292.\n", out)
}

func TestBatchCommand(t *testing.T) {
	out, err := runApp(t, "Is NovaBank safe?\n\nHow do I reset my password?\n", "batch")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Is NovaBank safe?\t"))
	assert.Contains(t, lines[1], "Forgot Password")

	out, err = runApp(t, "where is novabank located\n", "batch", "--json")
	require.NoError(t, err)
	var line batchLine
	require.NoError(t, json.Unmarshal([]byte(out), &line))
	assert.Equal(t, "Where is NovaBank located?", line.Question)
	assert.Greater(t, line.Score, 0.0)

	_, err = runApp(t, "", "batch", filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestCorpusCommand(t *testing.T) {
	out, err := runApp(t, "", "corpus")
	require.NoError(t, err)
	assert.Contains(t, out, "  0  What is NovaBank?")
	assert.Contains(t, out, corpus.Builtin().Fingerprint())
}

func TestInvalidSettings(t *testing.T) {
	_, err := runApp(t, "", "--log-level", "loud", "corpus")
	assert.ErrorContains(t, err, "invalid log level")

	_, err = runApp(t, "", "--log-format", "xml", "corpus")
	assert.ErrorContains(t, err, "invalid log format")

	cfg := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("matcher:\n  idf: bm25\n"), 0o644))
	app := newApp()
	app.Writer = &bytes.Buffer{}
	err = app.Run([]string{"novabot", "--config", cfg, "corpus"})
	assert.ErrorContains(t, err, "invalid config")
}
