// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package download

import (
	"reflect"
	"strings"
	"testing"
)

func TestCandidatesDirectPDF(t *testing.T) {
	got := Candidates("https://example.com/papers/attention.pdf")
	want := []string{"https://example.com/papers/attention.pdf"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Candidates = %v, want sole direct link %v", got, want)
	}
}

func TestCandidatesDirectPDFCaseInsensitive(t *testing.T) {
	got := Candidates("https://example.com/papers/ATTENTION.PDF")
	if len(got) != 1 {
		t.Errorf("uppercase .PDF should be the sole candidate, got %v", got)
	}
}

func TestCandidatesArxiv(t *testing.T) {
	got := Candidates("https://arxiv.org/abs/2301.07041")
	if len(got) == 0 {
		t.Fatal("no candidates")
	}
	if got[0] != "https://arxiv.org/pdf/2301.07041.pdf" {
		t.Errorf("first candidate = %q, want arXiv PDF rewrite", got[0])
	}
}

func TestCandidatesIEEE(t *testing.T) {
	got := Candidates("https://ieeexplore.ieee.org/document/123456")
	if got[0] != "https://ieeexplore.ieee.org/stamp/stamp.jsp?tp=&arnumber=123456" {
		t.Errorf("first candidate = %q, want stamp rewrite", got[0])
	}
}

func TestCandidatesACM(t *testing.T) {
	got := Candidates("https://dl.acm.org/doi/10.1145/3292500")
	if got[0] != "https://dl.acm.org/doi/10.1145/3292500?download=true" {
		t.Errorf("first candidate = %q, want download form", got[0])
	}
}

func TestCandidatesDSpaceSequenceStripped(t *testing.T) {
	in := "https://repo.example.edu/bitstream/handle/1/2/thesis?sequence=1&isAllowed=y"
	got := Candidates(in)
	if got[0] != "https://repo.example.edu/bitstream/handle/1/2/thesis" {
		t.Errorf("first candidate = %q, want sequence query stripped", got[0])
	}
}

func TestCandidatesGenericFallback(t *testing.T) {
	got := Candidates("https://journal.example.org/article/42")
	want := []string{
		"https://journal.example.org/article/42.pdf",
		"https://journal.example.org/article/42/pdf",
		"https://journal.example.org/article/42/download",
		"https://journal.example.org/article/42?download=true",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Candidates = %v, want %v", got, want)
	}
}

func TestCandidatesGenericAfterSiteRule(t *testing.T) {
	// Recognized hosts still get the generic forms after the rewrite.
	got := Candidates("https://www.researchgate.net/publication/12345")
	if got[0] != "https://www.researchgate.net/publication/12345.pdf" {
		t.Errorf("first candidate = %q, want ResearchGate rewrite", got[0])
	}
	if len(got) < 4 {
		t.Errorf("expected generic fallbacks after the site rule, got %v", got)
	}
}

func TestCandidatesDeduplicated(t *testing.T) {
	// The ResearchGate rewrite and the generic .pdf suffix coincide; the
	// duplicate must collapse, keeping first-seen order.
	got := Candidates("https://www.researchgate.net/publication/12345")
	seen := map[string]int{}
	for _, u := range got {
		seen[u]++
		if seen[u] > 1 {
			t.Errorf("duplicate candidate %q in %v", u, got)
		}
	}
}

func TestCandidatesTrailingSlash(t *testing.T) {
	got := Candidates("https://journal.example.org/article/42/")
	for _, u := range got {
		if strings.Contains(u, "//pdf") || strings.Contains(u, "42/.pdf") {
			t.Errorf("suffix applied without normalizing trailing slash: %q", u)
		}
	}
}

func TestCandidatesEmptyInput(t *testing.T) {
	if got := Candidates(""); len(got) != 0 {
		t.Errorf("Candidates(\"\") = %v, want empty", got)
	}
}

func TestCandidatesNeverEqualLanding(t *testing.T) {
	landing := "https://journal.example.org/article/42"
	for _, u := range Candidates(landing) {
		if u == landing {
			t.Errorf("candidate identical to landing URL: %q", u)
		}
	}
}
