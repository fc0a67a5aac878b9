package extractor

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// linkSelectors names every CSS selector treated as an out-link source,
// paired with the attribute the link lives in. goquery is used here purely
// as a convenience wrapper over the parsed tree, the same role the teacher
// gives it in its own container-selection layer.
var linkSelectors = []struct {
	selector string
	attr     string
}{
	{"a[href]", "href"},
	{"area[href]", "href"},
	{"frame[src]", "src"},
	{"iframe[src]", "src"},
	{"img[src]", "src"},
}

func extractHTML(sourceURL url.URL, doc *html.Node, opts Options) Result {
	var words []string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n == nil {
			return
		}

		switch n.Type {
		case html.TextNode:
			words = append(words, tokenize(n.Data)...)

		case html.ElementNode:
			switch n.Data {
			case "script":
				if opts.IncludeJS {
					words = append(words, tokenizeChildren(n)...)
				}
				return // never descend into script text as markup
			case "style":
				if opts.IncludeCSS {
					words = append(words, tokenizeChildren(n)...)
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return Result{Words: words, OutLinks: collectOutLinks(sourceURL, doc, opts)}
}

// collectOutLinks uses goquery's selector matching to gather every
// link-bearing element in one pass, including the conditional script/src
// and stylesheet-link sources gated by opts.
func collectOutLinks(sourceURL url.URL, doc *html.Node, opts Options) []string {
	gqDoc := goquery.NewDocumentFromNode(doc)

	var outLinks []string
	for _, ls := range linkSelectors {
		gqDoc.Find(ls.selector).Each(func(_ int, sel *goquery.Selection) {
			if raw, ok := sel.Attr(ls.attr); ok {
				if link, ok := resolveLink(sourceURL, raw); ok {
					outLinks = append(outLinks, link)
				}
			}
		})
	}

	if opts.IncludeJS {
		gqDoc.Find("script[src]").Each(func(_ int, sel *goquery.Selection) {
			if raw, ok := sel.Attr("src"); ok {
				if link, ok := resolveLink(sourceURL, raw); ok {
					outLinks = append(outLinks, link)
				}
			}
		})
	}
	if opts.IncludeCSS {
		gqDoc.Find("link[rel='stylesheet'][href]").Each(func(_ int, sel *goquery.Selection) {
			if raw, ok := sel.Attr("href"); ok {
				if link, ok := resolveLink(sourceURL, raw); ok {
					outLinks = append(outLinks, link)
				}
			}
		})
	}

	return outLinks
}

func tokenizeChildren(n *html.Node) []string {
	var words []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			words = append(words, tokenize(c.Data)...)
		}
	}
	return words
}

func resolveLink(base url.URL, raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "#") || strings.HasPrefix(raw, "javascript:") || strings.HasPrefix(raw, "data:") {
		return "", false
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	resolved := base.ResolveReference(ref)
	return resolved.String(), true
}
