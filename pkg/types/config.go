package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// DownloadConfig holds settings for the PDF acquisition stage.
type DownloadConfig struct {
	HTTPConfig `yaml:",inline"`

	// Concurrency is the maximum number of downloads in flight at once
	// during a batch run (default 3).
	Concurrency int `json:"concurrency" yaml:"concurrency"`

	// DownloadDir is the directory PDFs are written to. When empty,
	// ~/Downloads/ScholarDock_PDFs is used.
	DownloadDir string `json:"download_dir" yaml:"download_dir"`

	// BrowserTimeout bounds a single browser-automation fallback attempt
	// (default 45s).
	BrowserTimeout time.Duration `json:"browser_timeout" yaml:"browser_timeout"`
}

// HistoryConfig holds settings for the download history store.
type HistoryConfig struct {
	// DBPath is the SQLite database file recording batch runs.
	DBPath string `json:"db_path" yaml:"db_path"`
}
