package executor

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// cssSelector is a parsed CSS selector supporting the subset scraping
// workflows actually use: tag names, #id, .class, compound simple selectors
// and the descendant combinator. "div.title", "#price", "ul.items li a" all
// parse; pseudo-classes and attribute selectors do not.
type cssSelector struct {
	steps []simpleSelector
}

type simpleSelector struct {
	tag     string
	id      string
	classes []string
}

func parseSelector(s string) (*cssSelector, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty selector")
	}

	sel := &cssSelector{steps: make([]simpleSelector, 0, len(fields))}
	for _, f := range fields {
		step, err := parseSimple(f)
		if err != nil {
			return nil, err
		}
		sel.steps = append(sel.steps, step)
	}
	return sel, nil
}

func parseSimple(s string) (simpleSelector, error) {
	var step simpleSelector
	rest := s
	for rest != "" {
		marker := byte(0)
		if rest[0] == '#' || rest[0] == '.' {
			marker = rest[0]
			rest = rest[1:]
		}
		end := strings.IndexAny(rest, "#.")
		var token string
		if end == -1 {
			token, rest = rest, ""
		} else {
			token, rest = rest[:end], rest[end:]
		}
		if token == "" {
			return step, fmt.Errorf("invalid selector: %s", s)
		}
		switch marker {
		case '#':
			step.id = token
		case '.':
			step.classes = append(step.classes, token)
		default:
			step.tag = strings.ToLower(token)
		}
	}
	return step, nil
}

func (s simpleSelector) matches(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if s.tag != "" && s.tag != n.Data {
		return false
	}
	if s.id != "" && attrValue(n, "id") != s.id {
		return false
	}
	if len(s.classes) > 0 {
		have := strings.Fields(attrValue(n, "class"))
		for _, want := range s.classes {
			found := false
			for _, c := range have {
				if c == want {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// find returns the first node matching the selector in document order.
func (sel *cssSelector) find(root *html.Node) *html.Node {
	return sel.findFrom(root, 0)
}

func (sel *cssSelector) findFrom(n *html.Node, step int) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if sel.steps[step].matches(c) {
			if step == len(sel.steps)-1 {
				return c
			}
			if m := sel.findFrom(c, step+1); m != nil {
				return m
			}
		}
		// Descendant combinator: a later step may still match deeper down
		// without this node matching the current one.
		if m := sel.findFrom(c, step); m != nil {
			return m
		}
	}
	return nil
}

// nodeText concatenates all text content below n, matching what a browser's
// Element.textContent would return.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
