// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package download

import "strings"

// siteRule rewrites a landing-page URL using a known repository convention.
// It returns the rewritten URL and true when the rule recognizes the host.
// Rules are pure and never fail; an unrecognized URL yields ("", false).
type siteRule func(landingURL string) (string, bool)

// siteRules is the ordered table of host-specific rewrites. Order encodes
// priority: earlier rules produce earlier candidates.
var siteRules = []siteRule{
	arxivRule,
	researchGateRule,
	ieeeRule,
	acmRule,
	dspaceRule,
}

// arxivRule rewrites an arXiv abstract page to its PDF endpoint.
func arxivRule(u string) (string, bool) {
	if !strings.Contains(u, "arxiv.org/abs/") {
		return "", false
	}
	return strings.Replace(u, "arxiv.org/abs/", "arxiv.org/pdf/", 1) + pdfExt, true
}

// researchGateRule appends the extension to ResearchGate publication pages.
func researchGateRule(u string) (string, bool) {
	if !strings.Contains(u, "researchgate.net") {
		return "", false
	}
	return u + pdfExt, true
}

// ieeeRule rewrites an IEEE Xplore document page to its stamp (full-text)
// endpoint.
func ieeeRule(u string) (string, bool) {
	if !strings.Contains(u, "ieeexplore.ieee.org") || !strings.Contains(u, "/document/") {
		return "", false
	}
	return strings.Replace(u, "/document/", "/stamp/stamp.jsp?tp=&arnumber=", 1), true
}

// acmRule requests the download form of an ACM Digital Library page.
func acmRule(u string) (string, bool) {
	if !strings.Contains(u, "dl.acm.org") {
		return "", false
	}
	return u + "?download=true", true
}

// dspaceRule strips the ?sequence= query from DSpace bitstream URLs. The
// bare bitstream path serves the PDF directly on DSpace installations.
func dspaceRule(u string) (string, bool) {
	if !strings.Contains(u, "/bitstream/") {
		return "", false
	}
	if i := strings.Index(u, "?sequence="); i >= 0 {
		return u[:i], true
	}
	return "", false
}

// genericSuffixes are appended to the landing URL when looking for the PDF
// without host-specific knowledge. Order reflects how often each form shows
// up in the wild.
var genericSuffixes = []string{pdfExt, "/pdf", "/download", "?download=true"}

// Candidates produces the ordered, deduplicated list of URLs likely to
// serve the PDF for a landing page. A URL already ending in .pdf is the
// sole candidate. Otherwise host-specific rewrites come first, followed by
// the generic suffix forms, skipping any result identical to the input.
// The list is empty only for an empty landing URL.
func Candidates(landingURL string) []string {
	if landingURL == "" {
		return nil
	}

	if strings.HasSuffix(strings.ToLower(landingURL), pdfExt) {
		return []string{landingURL}
	}

	var urls []string
	for _, rule := range siteRules {
		if u, ok := rule(landingURL); ok {
			urls = append(urls, u)
		}
	}

	base := strings.TrimSuffix(landingURL, "/")
	for _, suffix := range genericSuffixes {
		if u := base + suffix; u != landingURL {
			urls = append(urls, u)
		}
	}

	return dedupe(urls)
}

// dedupe removes repeated URLs, keeping the first occurrence so earlier
// candidates retain their priority.
func dedupe(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	out := urls[:0]
	for _, u := range urls {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
