// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Article holds a bibliographic record handed over by the discovery phase.
// Only Title and URL are required for acquisition; PDFURL, when present,
// is a direct artifact link the discovery phase already found and is tried
// before any heuristic candidates.
type Article struct {
	// Title is the article title, used to derive the stored filename.
	Title string `json:"title" yaml:"title"`

	// URL is the landing page describing the article. It is not
	// necessarily the PDF itself.
	URL string `json:"url" yaml:"url"`

	// PDFURL is an optional direct PDF link from the discovery phase.
	PDFURL string `json:"pdf_url,omitempty" yaml:"pdf_url,omitempty"`

	// Authors is the author string as scraped (e.g. "A Smith, B Jones").
	Authors string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Venue is the publication venue, when known.
	Venue string `json:"venue,omitempty" yaml:"venue,omitempty"`

	// Year is the publication year, zero when unknown.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// Citations is the citation count reported by the discovery phase.
	Citations int `json:"citations,omitempty" yaml:"citations,omitempty"`
}
