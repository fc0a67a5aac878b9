// Package extractor turns a fetched byte buffer into word candidates and
// out-links. Unlike a content-distillation extractor that narrows to a
// single "main article" container, this one walks the entire parsed
// document: a wordlist benefits from navigation, headers and footers too.
package extractor

import "strings"

// MediaKind is a closed tagged variant selecting the parsing strategy for a
// fetched buffer, modeled as a match-over-variant enum rather than a
// heterogeneous interface (see also internal/location.Kind,
// internal/policy.SitePolicy, internal/filterpipe.FilterKind).
type MediaKind int

const (
	MediaUnknown MediaKind = iota
	MediaHTML
	MediaCSS
	MediaJS
	MediaText
)

// DetectMediaKind classifies a buffer from its HTTP Content-Type (preferred)
// and falls back to the fetched path's extension when contentType is empty
// or uninformative, as is the case for local files.
func DetectMediaKind(contentType string, path string) MediaKind {
	if kind := fromContentType(contentType); kind != MediaUnknown {
		return kind
	}
	return fromExtension(path)
}

func fromContentType(contentType string) MediaKind {
	ct := strings.ToLower(contentType)
	if semi := strings.IndexByte(ct, ';'); semi >= 0 {
		ct = ct[:semi]
	}
	ct = strings.TrimSpace(ct)

	switch {
	case strings.Contains(ct, "html"):
		return MediaHTML
	case strings.Contains(ct, "css"):
		return MediaCSS
	case strings.Contains(ct, "javascript") || strings.Contains(ct, "ecmascript"):
		return MediaJS
	case strings.HasPrefix(ct, "text/"):
		return MediaText
	default:
		return MediaUnknown
	}
}

func fromExtension(path string) MediaKind {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm"):
		return MediaHTML
	case strings.HasSuffix(lower, ".css"):
		return MediaCSS
	case strings.HasSuffix(lower, ".js") || strings.HasSuffix(lower, ".mjs"):
		return MediaJS
	case strings.HasSuffix(lower, ".txt") || strings.HasSuffix(lower, ".md"):
		return MediaText
	default:
		return MediaText
	}
}
