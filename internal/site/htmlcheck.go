package site

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// CheckHTML parses rendered output with a real HTML tokenizer and reports
// structural problems that survive the forgiving parser: missing root
// elements and unexpanded template tags that leaked into the output.
func CheckHTML(rendered string) []string {
	var problems []string

	doc, err := html.Parse(strings.NewReader(rendered))
	if err != nil {
		return []string{fmt.Sprintf("unparseable HTML: %v", err)}
	}

	var hasHTML, hasBody bool
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "html":
				hasHTML = true
			case "body":
				hasBody = true
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if !hasHTML {
		problems = append(problems, "no <html> element in rendered output")
	}
	if !hasBody {
		problems = append(problems, "no <body> element in rendered output")
	}
	if idx := strings.Index(rendered, "{{"); idx >= 0 {
		problems = append(problems, fmt.Sprintf("unexpanded template tag near offset %d", idx))
	}
	return problems
}
