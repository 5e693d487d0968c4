// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package download

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DBDXSS/ScholarDock/pkg/types"
)

func TestReadTargetsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.yaml")
	content := `articles:
  - title: "Attention Is All You Need"
    url: "https://arxiv.org/abs/1706.03762"
    pdf_url: "https://arxiv.org/pdf/1706.03762.pdf"
    year: 2017
    citations: 100000
  - title: "Deep Residual Learning"
    url: "https://ieeexplore.ieee.org/document/7780459"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	articles, err := ReadTargetsFile(path)
	if err != nil {
		t.Fatalf("ReadTargetsFile: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("len(articles) = %d, want 2", len(articles))
	}
	if articles[0].Title != "Attention Is All You Need" {
		t.Errorf("Title = %q", articles[0].Title)
	}
	if articles[0].PDFURL != "https://arxiv.org/pdf/1706.03762.pdf" {
		t.Errorf("PDFURL = %q", articles[0].PDFURL)
	}
	if articles[0].Year != 2017 {
		t.Errorf("Year = %d, want 2017", articles[0].Year)
	}
	if articles[1].PDFURL != "" {
		t.Errorf("second article PDFURL = %q, want empty", articles[1].PDFURL)
	}
}

func TestReadTargetsFileMissing(t *testing.T) {
	if _, err := ReadTargetsFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteReadReportFile(t *testing.T) {
	result := BatchResult{
		Total: 2,
		Successful: []Outcome{
			{
				Article: types.Article{Title: "Good Paper", URL: "https://example.com/1"},
				Success: true,
				PDFPath: "/tmp/pdfs/Good Paper.pdf",
			},
		},
		Failed: []Outcome{
			{
				Article: types.Article{Title: "Bad Paper", URL: "https://example.com/2"},
				Reason:  FailExhausted,
			},
		},
	}

	path := filepath.Join(t.TempDir(), "report.yaml")
	if err := WriteReportFile(path, result, "/tmp/pdfs"); err != nil {
		t.Fatalf("WriteReportFile: %v", err)
	}

	rf, err := ReadReportFile(path)
	if err != nil {
		t.Fatalf("ReadReportFile: %v", err)
	}
	if rf.DownloadDir != "/tmp/pdfs" {
		t.Errorf("DownloadDir = %q", rf.DownloadDir)
	}
	if rf.Summary.Total != 2 || rf.Summary.Succeeded != 1 || rf.Summary.Failed != 1 {
		t.Errorf("Summary = %+v", rf.Summary)
	}
	if rf.Summary.Timestamp.IsZero() {
		t.Error("Timestamp not set")
	}
	if len(rf.Successful) != 1 || rf.Successful[0].PDFPath != "/tmp/pdfs/Good Paper.pdf" {
		t.Errorf("Successful = %+v", rf.Successful)
	}
	if len(rf.Failed) != 1 || rf.Failed[0].Reason != string(FailExhausted) {
		t.Errorf("Failed = %+v", rf.Failed)
	}
}
