package main_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jfsagro-glitch/lessonsync"
	main "github.com/jfsagro-glitch/lessonsync/cmd/lessonsync"
	"github.com/jfsagro-glitch/lessonsync/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testMain builds a Main wired to a temp directory and a mock fetcher
// serving the given master document.
func testMain(t *testing.T, doc string) (*main.Main, string) {
	t.Helper()

	dir := t.TempDir()
	datasetPath := filepath.Join(dir, "lessons.json")
	cfgPath := filepath.Join(dir, "lessonsync.yaml")
	cfg := fmt.Sprintf("doc_id: doc1\ndataset_path: %s\nmedia_dir: %s\n",
		datasetPath, filepath.Join(dir, "media"))
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0644))

	m := main.NewMain()
	m.ConfigPath = cfgPath
	m.Fetcher = &mock.Fetcher{
		FetchTextFn: func(_ context.Context, id string) (string, error) {
			return doc, nil
		},
	}
	return m, datasetPath
}

func TestCmdSync(t *testing.T) {
	t.Run("publishes dataset", func(t *testing.T) {
		m, datasetPath := testMain(t, "Day 1: Intro\nHello\nTask: Say hi\n")

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"sync"}, stdout, stderr)
		require.NoError(t, err)

		assert.Contains(t, stdout.String(), "Synced 1 days")
		assert.Contains(t, stdout.String(), "Dataset hash:")

		data, err := os.ReadFile(datasetPath)
		require.NoError(t, err)
		ds, err := lessonsync.DecodeDataset(data)
		require.NoError(t, err)
		require.Contains(t, ds, 1)
		assert.Equal(t, "Intro", ds[1].Title)
		assert.Equal(t, "Say hi", ds[1].Task)
	})

	t.Run("prints warnings to stderr", func(t *testing.T) {
		m, _ := testMain(t, "Day 1\nKeep <div>this</div>\n")

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"sync"}, stdout, stderr)
		require.NoError(t, err)

		assert.Contains(t, stderr.String(), "warnings:")
		assert.Contains(t, stderr.String(), "day 1:")
	})

	t.Run("fails on empty source", func(t *testing.T) {
		m, _ := testMain(t, "no day headers here")

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"sync"}, stdout, stderr)
		require.Error(t, err)
		assert.Equal(t, lessonsync.EINVALID, lessonsync.ErrorCode(err))
	})
}

func TestCmdBackupsAndRestore(t *testing.T) {
	m, datasetPath := testMain(t, "Day 1: Intro\nHello\n")

	run := func(args ...string) (string, string, error) {
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		err := m.Run(context.Background(), args, stdout, stderr)
		return stdout.String(), stderr.String(), err
	}

	// No backups before the first publish.
	out, _, err := run("backups")
	require.NoError(t, err)
	assert.Contains(t, out, "No backups found.")

	_, _, err = run("sync")
	require.NoError(t, err)
	firstPublished, err := os.ReadFile(datasetPath)
	require.NoError(t, err)

	// A second sync with different content backs up the first version.
	m.Fetcher = &mock.Fetcher{
		FetchTextFn: func(context.Context, string) (string, error) {
			return "Day 1: Changed\nNew text\n", nil
		},
	}
	_, _, err = run("sync")
	require.NoError(t, err)

	out, _, err = run("backups")
	require.NoError(t, err)
	assert.Contains(t, out, "lessons.")
	assert.Contains(t, out, ".json")

	out, _, err = run("restore")
	require.NoError(t, err)
	assert.Contains(t, out, "Restored")

	restored, err := os.ReadFile(datasetPath)
	require.NoError(t, err)
	assert.Equal(t, firstPublished, restored)

	// Unknown backup names are reported, not errors.
	out, _, err = run("restore", "lessons.19990101T000000Z.json")
	require.NoError(t, err)
	assert.Contains(t, out, "not found")
}

func TestCmdDays(t *testing.T) {
	m, _ := testMain(t, "Day 1: Intro\nHello\nTask: Say hi\n\nDay 4\nMore\n")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	// Before any sync there is nothing to show.
	err := m.Run(context.Background(), []string{"days"}, stdout, stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "No dataset published yet")

	require.NoError(t, m.Run(context.Background(), []string{"sync"}, &bytes.Buffer{}, &bytes.Buffer{}))

	stdout.Reset()
	err = m.Run(context.Background(), []string{"days"}, stdout, stderr)
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "Intro")
	assert.Contains(t, out, "day  1")
	assert.Contains(t, out, "day  4")
}
