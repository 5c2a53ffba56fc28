package domain

import (
	"net/url"
	"path"
	"strings"
)

// MaxGallery caps how many gallery entries are kept per product sheet.
const MaxGallery = 20

// Supported catalog languages.
const (
	LanguageDE = "DE"
	LanguageNL = "NL"
	LanguageEN = "EN"
	LanguageFR = "FR"
)

// DefaultLanguage is used when a lookup does not specify one.
const DefaultLanguage = LanguageEN

// Languages returns the fixed set of supported language codes.
func Languages() []string {
	return []string{LanguageDE, LanguageNL, LanguageEN, LanguageFR}
}

// IsValidLanguage checks whether the given code is a supported language.
// Codes are compared case-insensitively.
func IsValidLanguage(code string) bool {
	for _, l := range Languages() {
		if strings.EqualFold(l, code) {
			return true
		}
	}
	return false
}

// GeneralInfo holds the basic product fields shown in the info section.
// ProductName and Brand are required; the rest may be empty.
type GeneralInfo struct {
	ProductName   string `json:"product_name"`
	Brand         string `json:"brand"`
	BrandPartCode string `json:"brand_part_code,omitempty"`
	Description   string `json:"description"`
}

// SpecRow is one (group, feature) → value row of the specification table,
// kept in the order the provider supplied it.
type SpecRow struct {
	Group   string `json:"group"`
	Feature string `json:"feature"`
	Value   string `json:"value"`
}

// GalleryImage is one secondary product image with thumbnail and full-size URLs.
type GalleryImage struct {
	ThumbURL string `json:"thumb_url"`
	FullURL  string `json:"full_url"`
}

// FileName returns the archive/download entry name for the full-size image.
func (g GalleryImage) FileName() string {
	return FileNameFromURL(g.FullURL)
}

// Video is an embeddable product video.
type Video struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// Document is a downloadable product document (a PDF in practice).
type Document struct {
	URL   string `json:"url"`
	Label string `json:"label"`
}

// FileName returns the download entry name for the document.
func (d Document) FileName() string {
	return FileNameFromURL(d.URL)
}

// ProductSheet is the full presentation model built from one catalog lookup.
// It is request-scoped: built fresh per lookup and never stored.
type ProductSheet struct {
	GTIN      string         `json:"gtin"`
	Language  string         `json:"language"`
	Info      GeneralInfo    `json:"info"`
	SpecRows  []SpecRow      `json:"spec_rows"`
	HeroURL   string         `json:"hero_url,omitempty"`
	Gallery   []GalleryImage `json:"gallery"`
	Videos    []Video        `json:"videos"`
	Documents []Document     `json:"documents"`
}

// DocumentLabel resolves the label of a document download: the provider's
// description, else the URL's path basename, else the literal "PDF".
func DocumentLabel(description, rawURL string) string {
	if description != "" {
		return description
	}
	if name := FileNameFromURL(rawURL); name != "" {
		return name
	}
	return "PDF"
}

// FileNameFromURL returns the basename of the URL's path, or "" when the URL
// has no usable path component.
func FileNameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" {
		return ""
	}
	return name
}
