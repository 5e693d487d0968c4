// Package download locates, fetches, validates, and stores PDF artifacts
// for bibliographic records. Candidate URLs are generated from the landing
// page, fetched in priority order, classified against the PDF signature,
// and interstitial redirect pages are resolved up to a fixed depth. Hosts
// that require script execution escalate to a browser driver.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/DBDXSS/ScholarDock/internal/httputil"
	"github.com/DBDXSS/ScholarDock/pkg/types"
)

// maxRedirectDepth bounds interstitial chains per candidate. Chains can
// cycle (page A redirects to B, B back to A); the cap guarantees
// termination regardless of resolver behavior.
const maxRedirectDepth = 3

// maxArtifactBytes caps how much of a response body is read. Anything
// larger than this is not a paper.
const maxArtifactBytes = 200 << 20

// FailureReason explains a failed retrieval outcome.
type FailureReason string

const (
	// FailExhausted means every candidate URL was tried (and the browser
	// fallback, where applicable) without producing a valid PDF.
	FailExhausted FailureReason = "all_candidates_exhausted"

	// FailAutomationUnavailable means the landing host requires script
	// execution but no browser driver is configured.
	FailAutomationUnavailable FailureReason = "automation_unavailable"

	// FailInternal means the retrieval task faulted unexpectedly; the
	// fault was contained and converted into this outcome.
	FailInternal FailureReason = "internal_error"
)

// Outcome is the terminal result of one article's retrieval attempt. It is
// never mutated after the state machine finishes.
type Outcome struct {
	Article types.Article
	Success bool
	PDFPath string
	Reason  FailureReason
}

// Fetcher runs the retrieval state machine: candidate generation, fetch,
// classification, interstitial resolution, and persistence. The negative
// cache and the browser driver are injected so callers control their
// lifetimes; both may be nil (nil cache gets a fresh one, nil driver
// disables the fallback).
type Fetcher struct {
	client  *http.Client
	cfg     types.DownloadConfig
	cache   *NegativeCache
	browser BrowserDriver
	w       io.Writer
}

// NewFetcher builds a Fetcher. Progress lines go to w; pass nil to
// suppress them. The writer is serialized internally so concurrent batch
// tasks may share it.
func NewFetcher(client *http.Client, cfg types.DownloadConfig, cache *NegativeCache, browser BrowserDriver, w io.Writer) *Fetcher {
	if cache == nil {
		cache = NewNegativeCache()
	}
	if w == nil {
		w = io.Discard
	}
	return &Fetcher{
		client:  client,
		cfg:     cfg,
		cache:   cache,
		browser: browser,
		w:       &syncWriter{w: w},
	}
}

// DefaultDownloadDir is where PDFs land when no directory is configured.
func DefaultDownloadDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "ScholarDock_PDFs")
	}
	return filepath.Join(home, "Downloads", "ScholarDock_PDFs")
}

// DownloadArticle retrieves the PDF for one article into dir (the default
// download directory when dir is empty). If the destination file already
// exists the article is reported successful without any network traffic.
func (f *Fetcher) DownloadArticle(ctx context.Context, article types.Article, dir string) Outcome {
	if dir == "" {
		dir = DefaultDownloadDir()
	}
	dest := filepath.Join(dir, SanitizeFilename(article.Title))
	outcome := Outcome{Article: article}

	// Idempotent short-circuit: an existing file wins without network I/O.
	if _, err := os.Stat(dest); err == nil {
		fmt.Fprintf(f.w, "exists:  %s\n", dest)
		outcome.Success = true
		outcome.PDFPath = dest
		return outcome
	}

	candidates := Candidates(article.URL)
	if article.PDFURL != "" {
		candidates = dedupe(append([]string{article.PDFURL}, candidates...))
	}

	for _, cand := range candidates {
		if ctx.Err() != nil {
			break
		}
		if f.tryCandidate(ctx, cand, dest, 0) {
			outcome.Success = true
			outcome.PDFPath = dest
			return outcome
		}
	}

	// Escalate to the browser for hosts that only serve the PDF after
	// script execution.
	if BrowserRequired(article.URL) {
		if f.browser == nil {
			fmt.Fprintf(f.w, "failed:  %s (browser automation unavailable)\n", article.Title)
			outcome.Reason = FailAutomationUnavailable
			return outcome
		}
		fmt.Fprintf(f.w, "browser: %s\n", article.URL)
		if f.browser.Download(ctx, article.URL, dest) {
			outcome.Success = true
			outcome.PDFPath = dest
			return outcome
		}
	}

	fmt.Fprintf(f.w, "failed:  %s (no candidate produced a PDF)\n", article.Title)
	outcome.Reason = FailExhausted
	return outcome
}

// tryCandidate fetches one URL, classifies the response, and follows
// interstitial redirects with an explicit depth counter. It returns true
// once a validated PDF has been written to dest. URLs that fail in any way
// are recorded in the negative cache so no later candidate chain, article,
// or run sharing the cache refetches them.
func (f *Fetcher) tryCandidate(ctx context.Context, rawURL, dest string, depth int) bool {
	if f.cache.Contains(rawURL) {
		fmt.Fprintf(f.w, "skip:    %s (known to fail)\n", rawURL)
		return false
	}

	fmt.Fprintf(f.w, "trying:  %s\n", rawURL)
	status, contentType, body, err := f.fetch(ctx, rawURL)
	if err != nil {
		fmt.Fprintf(f.w, "  fetch failed: %v\n", err)
		f.cache.Add(rawURL)
		return false
	}

	switch Classify(status, contentType, body) {
	case ClassValid:
		if err := writeArtifact(dest, body); err != nil {
			fmt.Fprintf(f.w, "  write failed: %v\n", err)
			return false
		}
		fmt.Fprintf(f.w, "saved:   %s\n", dest)
		return true

	case ClassRedirectPage:
		next, ok := ResolveInterstitial(rawURL, body)
		if ok && next != rawURL && depth < maxRedirectDepth {
			return f.tryCandidate(ctx, next, dest, depth+1)
		}
		fmt.Fprintf(f.w, "  interstitial dead end (depth %d)\n", depth)
		f.cache.Add(rawURL)
		return false

	default:
		fmt.Fprintf(f.w, "  rejected (HTTP %d, %q)\n", status, contentType)
		f.cache.Add(rawURL)
		return false
	}
}

// fetch performs one GET with browser-like headers and reads the body.
func (f *Fetcher) fetch(ctx context.Context, rawURL string) (status int, contentType string, body []byte, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, "", nil, err
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", "application/pdf,application/octet-stream,*/*")

	resp, err := httputil.DoWithRetry(ctx, f.client, req, 0)
	if err != nil {
		return 0, "", nil, err
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxArtifactBytes))
	if err != nil {
		return 0, "", nil, err
	}
	return resp.StatusCode, resp.Header.Get("Content-Type"), body, nil
}

// writeArtifact writes body to dest through a temp file in the same
// directory, renaming on success, so a partial write never lands at dest.
// Directory creation treats "already exists" as success, which keeps
// concurrent batch tasks safe.
func writeArtifact(dest string, body []byte) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating download directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".scholardock-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(body)
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// syncWriter serializes progress writes from concurrent retrieval tasks.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
