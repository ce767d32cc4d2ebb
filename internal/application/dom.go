package application

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const articleSelector = `article[data-testid="tweet"]`

var statusLinkPattern = regexp.MustCompile(`^/([A-Za-z0-9_]+)/status/([0-9]+)`)

func parseDocument(content string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse rendered page: %w", err)
	}
	return doc, nil
}

func byTestID(id string) string {
	return `[data-testid="` + id + `"]`
}

// textContent is Selection.Text with <br> kept as newlines and emoji images read from their alt text.
func textContent(sel *goquery.Selection) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
		case html.ElementNode:
			if n.Data == "br" {
				b.WriteByte('\n')
			}
			if n.Data == "img" {
				for _, a := range n.Attr {
					if a.Key == "alt" {
						b.WriteString(a.Val)
					}
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.TrimSpace(b.String())
}

// ariaLabelContains reports whether any element under scope has an aria-label containing one of
// the keywords, compared case-insensitively.
func ariaLabelContains(scope *goquery.Selection, keywords ...string) bool {
	for _, node := range scope.Find("[aria-label]").EachIter() {
		if label, _ := node.Attr("aria-label"); containsAnyFold(label, keywords...) {
			return true
		}
	}
	return false
}

// articleAuthor is the handle linked from the article's User-Name block.
func articleAuthor(article *goquery.Selection) string {
	href, ok := article.Find(byTestID("User-Name")).First().Find(`a[href^="/"]`).First().Attr("href")
	if !ok {
		return ""
	}

	handle, _, _ := strings.Cut(strings.TrimPrefix(href, "/"), "/")
	return handle
}

// articleStatus returns the author and post id of the article's permalink. The permalink wraps the
// timestamp; any other status link is a fallback.
func articleStatus(article *goquery.Selection) (author string, id string, ok bool) {
	links := article.Find("a[href]").FilterFunction(func(_ int, link *goquery.Selection) bool {
		href, _ := link.Attr("href")
		return statusLinkPattern.MatchString(href)
	})
	if links.Length() == 0 {
		return "", "", false
	}

	chosen := links.First()
	if permalink := links.Has("time"); permalink.Length() > 0 {
		chosen = permalink.First()
	}

	href, _ := chosen.Attr("href")
	match := statusLinkPattern.FindStringSubmatch(href)
	return match[1], match[2], true
}

func containsAnyFold(text string, phrases ...string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range phrases {
		if strings.Contains(lower, strings.ToLower(phrase)) {
			return true
		}
	}
	return false
}
