package session_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nibzard/taskline/internal/session"
	"github.com/nibzard/taskline/internal/storage"
	"github.com/nibzard/taskline/internal/ui"
)

func TestConsoleSessionGolden(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".taskline", "tasks.txt")
	store := storage.New(path)

	var out bytes.Buffer
	s, err := session.New(session.Options{
		Tasks:    store.Load(),
		Store:    store,
		Renderer: ui.NewConsole(&out),
	})
	require.NoError(t, err)

	input := strings.Join([]string{
		"list",
		"event meeting /from 2025-01-01 0900 /to 2025-01-01 1000",
		"todo buy milk",
		"deadline finish report /by 2025-01-01 1800",
		"mark 3",
		"unmark 3",
		"find MILK",
		"sort",
		"list",
		"delete 1",
		"blah",
		"mark 9",
		"bye",
		"todo never processed",
	}, "\n")
	require.NoError(t, s.Run(context.Background(), strings.NewReader(input)))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "console_session", out.Bytes())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "T | 0 | buy milk\nD | 0 | finish report | 2025-01-01 1800\n", string(data))
}

func TestSessionResumesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	require.NoError(t, os.WriteFile(path, []byte("T | 1 | read book\nD | 0\n"), 0644))
	store := storage.New(path)

	var out bytes.Buffer
	s, err := session.New(session.Options{
		Tasks:    store.Load(),
		Store:    store,
		Renderer: ui.NewConsole(&out),
	})
	require.NoError(t, err)
	require.Equal(t, 1, s.Tasks().Size())

	require.NoError(t, s.Run(context.Background(), strings.NewReader("list\n")))
	assert.Contains(t, out.String(), "1. [T][X] read book\n")
}
