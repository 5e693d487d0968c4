// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package download

import (
	"bytes"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// metaRefreshURL extracts the url= component of a meta-refresh content
// attribute, e.g. "0; url=/files/paper.pdf".
var metaRefreshURL = regexp.MustCompile(`(?i)url\s*=\s*['"]?\s*([^'">;\s]+)`)

// scriptRedirects are the recognized script-based location assignments.
// Publishers rarely stray from these forms on interstitial pages.
var scriptRedirects = []*regexp.Regexp{
	regexp.MustCompile(`(?i)window\.location(?:\.href)?\s*=\s*["']([^"']+)["']`),
	regexp.MustCompile(`(?i)(?:window\.|document\.)?location\.replace\(\s*["']([^"']+)["']`),
	regexp.MustCompile(`(?i)(?:document\.)?location\.href\s*=\s*["']([^"']+)["']`),
}

// downloadStartingText matches the phrasing around "your download is
// starting, click here if it does not" links.
var downloadStartingText = regexp.MustCompile(
	`(?i)download\s+(?:is\s+starting|will\s+(?:start|begin)|should\s+(?:start|begin))|starting\s+your\s+download|if\s+(?:the\s+|your\s+)?download\s+does\s*n[o']t\s+start`)

// ResolveInterstitial extracts the next URL to try from an HTML redirect
// page. It applies, in order: meta refresh, script location assignment, a
// link adjacent to download-is-starting text, and finally any link ending
// in .pdf. Relative targets are resolved against pageURL. It never
// fetches; the second return value is false when no rule matches.
func ResolveInterstitial(pageURL string, body []byte) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", false
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}

	for _, extract := range []func(*goquery.Document) (string, bool){
		metaRefreshTarget,
		scriptRedirectTarget,
		downloadLinkTarget,
		pdfAnchorTarget,
	} {
		if target, ok := extract(doc); ok {
			if resolved, ok := resolveRef(base, target); ok {
				return resolved, true
			}
		}
	}
	return "", false
}

// metaRefreshTarget finds a <meta http-equiv="refresh"> tag and parses the
// url= fragment of its content attribute.
func metaRefreshTarget(doc *goquery.Document) (string, bool) {
	var target string
	doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		equiv, _ := s.Attr("http-equiv")
		if !strings.EqualFold(equiv, "refresh") {
			return true
		}
		content, ok := s.Attr("content")
		if !ok {
			return true
		}
		if m := metaRefreshURL.FindStringSubmatch(content); m != nil {
			target = m[1]
			return false
		}
		return true
	})
	return target, target != ""
}

// scriptRedirectTarget scans inline scripts for a recognized location
// assignment.
func scriptRedirectTarget(doc *goquery.Document) (string, bool) {
	var target string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		for _, pat := range scriptRedirects {
			if m := pat.FindStringSubmatch(text); m != nil {
				target = m[1]
				return false
			}
		}
		return true
	})
	return target, target != ""
}

// downloadLinkTarget finds a link whose surrounding text announces that a
// download is starting.
func downloadLinkTarget(doc *goquery.Document) (string, bool) {
	var target string
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		context := s.Parent().Text()
		if !downloadStartingText.MatchString(context) {
			return true
		}
		if href, ok := s.Attr("href"); ok && href != "" {
			target = href
			return false
		}
		return true
	})
	return target, target != ""
}

// pdfAnchorTarget is the last resort: the first link whose target ends in
// the artifact extension.
func pdfAnchorTarget(doc *goquery.Document) (string, bool) {
	var target string
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if ok && strings.HasSuffix(strings.ToLower(href), pdfExt) {
			target = href
			return false
		}
		return true
	})
	return target, target != ""
}

// resolveRef resolves a possibly relative target against the page URL.
func resolveRef(base *url.URL, target string) (string, bool) {
	ref, err := url.Parse(strings.TrimSpace(target))
	if err != nil {
		return "", false
	}
	if base != nil {
		ref = base.ResolveReference(ref)
	}
	if !ref.IsAbs() {
		return "", false
	}
	return ref.String(), true
}
