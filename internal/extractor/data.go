package extractor

// Options controls the optional inclusion of non-markup content as word
// and out-link sources. Defaults (both false) match the conservative
// behavior of treating <script> and <style> purely as noise.
type Options struct {
	IncludeJS  bool
	IncludeCSS bool
}

// Result holds a single extraction pass's yield: the raw word candidates
// (pre-FilterPipeline, pre-tokenization-of-case) and the absolute out-link
// locations discovered in the buffer, grouped by the selector that found
// them (anchors first, then area, frame, iframe, img, and the optional
// script and stylesheet sources); document order holds only within a group.
type Result struct {
	Words    []string
	OutLinks []string
}
