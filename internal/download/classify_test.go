// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package download

import "testing"

func TestClassify(t *testing.T) {
	pdfBody := []byte("%PDF-1.4 content")
	htmlBody := []byte("<html><body>redirecting</body></html>")

	tests := []struct {
		name        string
		status      int
		contentType string
		body        []byte
		want        Classification
	}{
		{"valid pdf", 200, "application/pdf", pdfBody, ClassValid},
		{"valid octet-stream", 200, "application/octet-stream", pdfBody, ClassValid},
		{"valid with charset suffix", 200, "application/pdf;charset=binary", pdfBody, ClassValid},
		{"valid mixed-case header", 200, "Application/PDF", pdfBody, ClassValid},
		{"spoofed header wrong signature", 200, "application/pdf", htmlBody, ClassReject},
		{"octet-stream wrong signature", 200, "application/octet-stream", []byte("GIF89a"), ClassReject},
		{"html page", 200, "text/html", htmlBody, ClassRedirectPage},
		{"html with charset", 200, "text/html; charset=utf-8", htmlBody, ClassRedirectPage},
		{"html body but pdf-looking bytes", 200, "text/html", pdfBody, ClassRedirectPage},
		{"not found", 404, "application/pdf", pdfBody, ClassReject},
		{"server error", 500, "text/html", htmlBody, ClassReject},
		{"redirect status", 302, "text/html", htmlBody, ClassReject},
		{"unrecognized content type", 200, "application/json", []byte("{}"), ClassReject},
		{"missing content type", 200, "", pdfBody, ClassReject},
		{"empty body pdf header", 200, "application/pdf", nil, ClassReject},
		{"truncated magic", 200, "application/pdf", []byte("%PD"), ClassReject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.status, tt.contentType, tt.body)
			if got != tt.want {
				t.Errorf("Classify(%d, %q) = %v, want %v", tt.status, tt.contentType, got, tt.want)
			}
		})
	}
}

func TestClassificationString(t *testing.T) {
	if ClassValid.String() != "valid" || ClassRedirectPage.String() != "redirect-page" || ClassReject.String() != "reject" {
		t.Error("Classification.String mismatch")
	}
}
