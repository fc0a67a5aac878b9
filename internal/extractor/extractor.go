package extractor

import (
	"bytes"
	"fmt"
	"net/url"
	"time"

	"github.com/lexforge/wdict/internal/telemetry"
	"github.com/lexforge/wdict/pkg/failure"
	"golang.org/x/net/html"
)

// Extractor turns a fetched buffer into word candidates and out-links. It
// is the sole parser in the pipeline; fetchers return bytes, extractors
// interpret them.
type Extractor struct {
	sink telemetry.Sink
	opts Options
}

func NewExtractor(sink telemetry.Sink, opts Options) Extractor {
	return Extractor{sink: sink, opts: opts}
}

// Extract dispatches on media, returning the words and out-links found in
// raw. sourceURL anchors relative out-link resolution; for local files
// callers pass a file:// URL built from the absolute path.
func (e *Extractor) Extract(sourceURL url.URL, kind MediaKind, raw []byte) (Result, failure.ClassifiedError) {
	if len(raw) == 0 {
		err := &ExtractionError{Message: "empty buffer", Retryable: false, Cause: ErrCauseEmptyBuffer}
		e.recordError(sourceURL, err)
		return Result{}, err
	}

	switch kind {
	case MediaHTML:
		doc, parseErr := html.Parse(bytes.NewReader(raw))
		if parseErr != nil {
			err := &ExtractionError{
				Message:   fmt.Sprintf("failed to parse HTML: %v", parseErr),
				Retryable: false,
				Cause:     ErrCauseNotParseable,
			}
			e.recordError(sourceURL, err)
			return Result{}, err
		}
		return extractHTML(sourceURL, doc, e.opts), nil

	case MediaCSS, MediaJS, MediaText, MediaUnknown:
		return Result{Words: tokenize(string(raw))}, nil

	default:
		return Result{Words: tokenize(string(raw))}, nil
	}
}

func (e *Extractor) recordError(sourceURL url.URL, err *ExtractionError) {
	e.sink.RecordError(
		time.Now(),
		"extractor",
		"Extractor.Extract",
		mapExtractionErrorToMetadataCause(err),
		err.Error(),
		[]telemetry.Attribute{telemetry.NewAttr(telemetry.AttrURL, sourceURL.String())},
	)
}
