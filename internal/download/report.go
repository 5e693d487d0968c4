// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package download

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/DBDXSS/ScholarDock/pkg/types"
)

// TargetsFile is the on-disk hand-off from the discovery phase: the list
// of articles a batch run should acquire.
type TargetsFile struct {
	Articles []types.Article `yaml:"articles"`
}

// ReadTargetsFile loads a discovery hand-off file.
func ReadTargetsFile(path string) ([]types.Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading targets file: %w", err)
	}
	var tf TargetsFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parsing targets file: %w", err)
	}
	return tf.Articles, nil
}

// ReportFile is the on-disk record of one batch run.
type ReportFile struct {
	DownloadDir string        `yaml:"download_dir"`
	Summary     ReportSummary `yaml:"summary"`
	Successful  []ReportEntry `yaml:"successful,omitempty"`
	Failed      []ReportEntry `yaml:"failed,omitempty"`
}

// ReportSummary stores batch statistics and a timestamp.
type ReportSummary struct {
	Total     int       `yaml:"total"`
	Succeeded int       `yaml:"succeeded"`
	Failed    int       `yaml:"failed"`
	Timestamp time.Time `yaml:"timestamp"`
}

// ReportEntry is one article's outcome in serializable form.
type ReportEntry struct {
	Title   string `yaml:"title"`
	URL     string `yaml:"url"`
	PDFPath string `yaml:"pdf_path,omitempty"`
	Reason  string `yaml:"reason,omitempty"`
}

// WriteReportFile saves a batch result to a YAML file.
func WriteReportFile(path string, result BatchResult, downloadDir string) error {
	rf := ReportFile{
		DownloadDir: downloadDir,
		Summary: ReportSummary{
			Total:     result.Total,
			Succeeded: len(result.Successful),
			Failed:    len(result.Failed),
			Timestamp: time.Now(),
		},
	}
	for _, o := range result.Successful {
		rf.Successful = append(rf.Successful, ReportEntry{
			Title:   o.Article.Title,
			URL:     o.Article.URL,
			PDFPath: o.PDFPath,
		})
	}
	for _, o := range result.Failed {
		rf.Failed = append(rf.Failed, ReportEntry{
			Title:  o.Article.Title,
			URL:    o.Article.URL,
			Reason: string(o.Reason),
		})
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadReportFile loads a previously written batch report.
func ReadReportFile(path string) (*ReportFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report file: %w", err)
	}
	var rf ReportFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing report file: %w", err)
	}
	return &rf, nil
}
