package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/jfsagro-glitch/lessonsync"
)

// Config is the YAML configuration file. Every field can be overridden
// through a LESSONSYNC_* environment variable.
type Config struct {
	// DocID is the master document to compile with "sync".
	DocID string `yaml:"doc_id"`

	// RootFolderID is the per-day folder tree for "sync --folder".
	RootFolderID string `yaml:"root_folder_id"`

	// DatasetPath is where the compiled dataset is published.
	DatasetPath string `yaml:"dataset_path"`

	// MediaDir is the local media cache directory.
	MediaDir string `yaml:"media_dir"`

	// MediaPrefix is the asset path prefix recorded in the dataset.
	MediaPrefix string `yaml:"media_prefix"`

	// MaxPostLen bounds a single post; 0 means the built-in default.
	MaxPostLen int `yaml:"max_post_len"`

	// QPS bounds Drive API calls per second; 0 means the built-in default.
	QPS float64 `yaml:"qps"`

	// CredentialsFile points at the service account JSON key.
	CredentialsFile string `yaml:"credentials_file"`
}

// DefaultConfig returns the configuration used when no file and no
// environment overrides are present.
func DefaultConfig() Config {
	return Config{
		DatasetPath: "data/lessons.json",
		MediaDir:    "data/content_media",
		MediaPrefix: "content_media",
	}
}

// LoadConfig reads the config file if it exists, then applies environment
// overrides. A missing file is not an error; a malformed one is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, lessonsync.Errorf(lessonsync.EINVALID, "parse config %s: %v", path, err)
		}
	}

	applyEnv(&cfg)

	if cfg.DatasetPath == "" {
		cfg.DatasetPath = DefaultConfig().DatasetPath
	}
	if cfg.MediaDir == "" {
		cfg.MediaDir = DefaultConfig().MediaDir
	}
	if cfg.MediaPrefix == "" {
		cfg.MediaPrefix = DefaultConfig().MediaPrefix
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString(&cfg.DocID, "LESSONSYNC_DOC_ID")
	setString(&cfg.RootFolderID, "LESSONSYNC_ROOT_FOLDER_ID")
	setString(&cfg.DatasetPath, "LESSONSYNC_DATASET_PATH")
	setString(&cfg.MediaDir, "LESSONSYNC_MEDIA_DIR")
	setString(&cfg.MediaPrefix, "LESSONSYNC_MEDIA_PREFIX")
	setString(&cfg.CredentialsFile, "LESSONSYNC_CREDENTIALS_FILE")

	if v := os.Getenv("LESSONSYNC_MAX_POST_LEN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxPostLen = n
		}
	}
	if v := os.Getenv("LESSONSYNC_QPS"); v != "" {
		if q, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.QPS = q
		}
	}
}

// Credentials resolves the service account key: inline JSON from
// GOOGLE_SERVICE_ACCOUNT_JSON wins, then GOOGLE_SERVICE_ACCOUNT_FILE,
// then the configured credentials file.
func (c Config) Credentials() ([]byte, error) {
	if v := os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"); v != "" {
		return []byte(v), nil
	}

	path := os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE")
	if path == "" {
		path = c.CredentialsFile
	}
	if path == "" {
		return nil, lessonsync.Errorf(lessonsync.EINVALID,
			"no credentials configured: set credentials_file or GOOGLE_SERVICE_ACCOUNT_JSON")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credentials %s: %w", path, err)
	}
	return data, nil
}
