// Package splash holds the static placeholder page shown while the main
// window loads.
package splash

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

const dataURLPrefix = "data:text/html;charset=UTF-8,"

// Window geometry for the splash.
const (
	Width  = 400
	Height = 300
)

var pageTmpl = template.Must(template.New("splash").Parse(`<!DOCTYPE html>
<html lang="en">
    <head>
        <meta charset="UTF-8">
        <title>{{.Title}}</title>
    </head>
    <body>{{if .Body}}
        <p>{{.Body}}</p>{{end}}
    </body>
</html>
`))

// Page is the fixed splash content. It is never updated after construction.
type Page struct {
	Title string
	Body  string
}

// Default returns the splash page for the given application title.
func Default(title string) Page {
	return Page{Title: title}
}

// HTML renders the page as a standalone document.
func (p Page) HTML() string {
	var buf bytes.Buffer
	// Executing a parsed template over two strings cannot fail.
	_ = pageTmpl.Execute(&buf, p)
	return buf.String()
}

// DataURL returns the page inlined as a text/html data URL.
func (p Page) DataURL() string {
	return dataURLPrefix + encodeComponent(p.HTML())
}

// ParseDataURL recovers a Page from a URL produced by DataURL.
func ParseDataURL(u string) (Page, error) {
	if !strings.HasPrefix(u, dataURLPrefix) {
		return Page{}, errors.New("not a text/html data URL")
	}
	markup, err := url.PathUnescape(strings.TrimPrefix(u, dataURLPrefix))
	if err != nil {
		return Page{}, fmt.Errorf("decode data URL: %w", err)
	}
	return Parse(markup)
}

// Parse extracts the title and visible body text of an HTML document.
func Parse(markup string) (Page, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return Page{}, fmt.Errorf("parse splash markup: %w", err)
	}

	var (
		p    Page
		body []string
		walk func(n *html.Node, inBody bool)
	)
	walk = func(n *html.Node, inBody bool) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if n.FirstChild != nil {
					p.Title = strings.TrimSpace(n.FirstChild.Data)
				}
				return
			case "script", "style":
				return
			case "body":
				inBody = true
			}
		}
		if inBody && n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				body = append(body, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inBody)
		}
	}
	walk(doc, false)

	p.Body = strings.Join(body, " ")
	return p, nil
}

// encodeComponent escapes s the way encodeURIComponent does.
func encodeComponent(s string) string {
	const unreserved = "-_.!~*'()"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' ||
			strings.IndexByte(unreserved, c) >= 0 {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}
