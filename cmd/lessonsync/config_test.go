package main_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jfsagro-glitch/lessonsync"
	main "github.com/jfsagro-glitch/lessonsync/cmd/lessonsync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := main.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "data/lessons.json", cfg.DatasetPath)
	assert.Equal(t, "data/content_media", cfg.MediaDir)
	assert.Equal(t, "content_media", cfg.MediaPrefix)
	assert.Empty(t, cfg.DocID)
}

func TestLoadConfig_ParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lessonsync.yaml")
	content := `
doc_id: doc123
root_folder_id: folder456
dataset_path: out/lessons.json
media_dir: out/media
max_post_len: 3500
qps: 2.5
credentials_file: key.json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := main.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "doc123", cfg.DocID)
	assert.Equal(t, "folder456", cfg.RootFolderID)
	assert.Equal(t, "out/lessons.json", cfg.DatasetPath)
	assert.Equal(t, "out/media", cfg.MediaDir)
	assert.Equal(t, 3500, cfg.MaxPostLen)
	assert.InDelta(t, 2.5, cfg.QPS, 0.001)
	assert.Equal(t, "key.json", cfg.CredentialsFile)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lessonsync.yaml")
	require.NoError(t, os.WriteFile(path, []byte("doc_id: [unclosed"), 0644))

	_, err := main.LoadConfig(path)
	require.Error(t, err)
	assert.Equal(t, lessonsync.EINVALID, lessonsync.ErrorCode(err))
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lessonsync.yaml")
	require.NoError(t, os.WriteFile(path, []byte("doc_id: from-file\nmax_post_len: 100\n"), 0644))

	t.Setenv("LESSONSYNC_DOC_ID", "from-env")
	t.Setenv("LESSONSYNC_MAX_POST_LEN", "2000")
	t.Setenv("LESSONSYNC_QPS", "1.5")

	cfg, err := main.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.DocID)
	assert.Equal(t, 2000, cfg.MaxPostLen)
	assert.InDelta(t, 1.5, cfg.QPS, 0.001)
}

func TestConfig_Credentials(t *testing.T) {
	t.Run("inline env wins", func(t *testing.T) {
		t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", `{"type": "service_account"}`)

		creds, err := main.Config{CredentialsFile: "ignored.json"}.Credentials()
		require.NoError(t, err)
		assert.JSONEq(t, `{"type": "service_account"}`, string(creds))
	})

	t.Run("reads configured file", func(t *testing.T) {
		t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", "")
		t.Setenv("GOOGLE_SERVICE_ACCOUNT_FILE", "")

		path := filepath.Join(t.TempDir(), "key.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"type": "service_account"}`), 0600))

		creds, err := main.Config{CredentialsFile: path}.Credentials()
		require.NoError(t, err)
		assert.NotEmpty(t, creds)
	})

	t.Run("nothing configured", func(t *testing.T) {
		t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", "")
		t.Setenv("GOOGLE_SERVICE_ACCOUNT_FILE", "")

		_, err := main.Config{}.Credentials()
		require.Error(t, err)
		assert.Equal(t, lessonsync.EINVALID, lessonsync.ErrorCode(err))
	})
}
