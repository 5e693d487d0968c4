// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package download

import (
	"bytes"
	"net/http"
	"strings"
)

// pdfMagic is the signature every valid PDF body starts with. The check is
// mandatory even when the Content-Type header claims a PDF: misconfigured
// servers spoof the header and would otherwise leave corrupt files on disk.
var pdfMagic = []byte("%PDF")

// Classification is the verdict on one fetched response.
type Classification int

const (
	// ClassReject means the response is neither the artifact nor a page
	// worth resolving: wrong status, unrecognized content type, or a PDF
	// content type with a mismatched signature.
	ClassReject Classification = iota

	// ClassValid means the response body is the PDF artifact.
	ClassValid

	// ClassRedirectPage means the response is an HTML page that may embed
	// the real artifact location (meta refresh, script redirect, link).
	ClassRedirectPage
)

func (c Classification) String() string {
	switch c {
	case ClassValid:
		return "valid"
	case ClassRedirectPage:
		return "redirect-page"
	default:
		return "reject"
	}
}

// Classify inspects an HTTP response and decides whether it is the PDF
// artifact, an interstitial HTML page, or a rejection.
func Classify(status int, contentType string, body []byte) Classification {
	if status != http.StatusOK {
		return ClassReject
	}

	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "application/pdf"), strings.Contains(ct, "application/octet-stream"):
		if bytes.HasPrefix(body, pdfMagic) {
			return ClassValid
		}
		return ClassReject
	case strings.Contains(ct, "text/html"):
		return ClassRedirectPage
	}
	return ClassReject
}
