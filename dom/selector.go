package dom

import (
	"fmt"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// The selector engine understands the subset of CSS the components use:
// type selectors, '*', '#id', '.class', '[attr]', '[attr=value]' (quoted or
// bare), descendant combinators and the '>' child combinator. Selectors are
// compiled to XPath and evaluated with htmlquery.

type attrMatch struct {
	name     string
	value    string
	hasValue bool
}

type compound struct {
	tag     string
	id      string
	classes []string
	attrs   []attrMatch
}

type step struct {
	child bool
	sel   compound
}

func parseSelector(selector string) ([]step, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return nil, fmt.Errorf("dom: empty selector")
	}

	var (
		steps []step
		child bool
		i     int
	)
	for i < len(selector) {
		switch c := selector[i]; {
		case c == ' ' || c == '\t' || c == '\n':
			i++
			continue
		case c == '>':
			child = true
			i++
			continue
		}
		sel, next, err := parseCompound(selector, i)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step{child: child, sel: sel})
		child = false
		i = next
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("dom: invalid selector %q", selector)
	}
	return steps, nil
}

func parseCompound(s string, i int) (compound, int, error) {
	var sel compound
	start := i
	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '>':
			return sel, i, nil
		case c == '#':
			name, next := readIdent(s, i+1)
			if name == "" {
				return sel, i, fmt.Errorf("dom: invalid id in selector %q", s)
			}
			sel.id = name
			i = next
		case c == '.':
			name, next := readIdent(s, i+1)
			if name == "" {
				return sel, i, fmt.Errorf("dom: invalid class in selector %q", s)
			}
			sel.classes = append(sel.classes, name)
			i = next
		case c == '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return sel, i, fmt.Errorf("dom: unterminated attribute in selector %q", s)
			}
			attr, err := parseAttr(s[i+1 : i+end])
			if err != nil {
				return sel, i, err
			}
			sel.attrs = append(sel.attrs, attr)
			i += end + 1
		case c == '*' && i == start:
			sel.tag = "*"
			i++
		default:
			if i != start {
				return sel, i, fmt.Errorf("dom: unexpected %q in selector %q", c, s)
			}
			name, next := readIdent(s, i)
			if name == "" {
				return sel, i, fmt.Errorf("dom: unexpected %q in selector %q", c, s)
			}
			sel.tag = strings.ToLower(name)
			i = next
		}
	}
	return sel, i, nil
}

func readIdent(s string, i int) (string, int) {
	start := i
	for i < len(s) {
		c := s[i]
		if c == '-' || c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80 {
			i++
			continue
		}
		break
	}
	return s[start:i], i
}

func parseAttr(body string) (attrMatch, error) {
	name, value, found := strings.Cut(body, "=")
	name = strings.TrimSpace(name)
	if name == "" {
		return attrMatch{}, fmt.Errorf("dom: invalid attribute selector [%s]", body)
	}
	m := attrMatch{name: strings.ToLower(name)}
	if !found {
		return m, nil
	}
	value = strings.TrimSpace(value)
	if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') && value[len(value)-1] == value[0] {
		value = value[1 : len(value)-1]
	}
	m.value = value
	m.hasValue = true
	return m, nil
}

func xpathLiteral(value string) string {
	if !strings.Contains(value, "'") {
		return "'" + value + "'"
	}
	if !strings.Contains(value, `"`) {
		return `"` + value + `"`
	}
	parts := strings.Split(value, "'")
	quoted := make([]string, len(parts))
	for i, part := range parts {
		quoted[i] = "'" + part + "'"
	}
	return "concat(" + strings.Join(quoted, `, "'", `) + ")"
}

func (c compound) xpath() string {
	tag := c.tag
	if tag == "" {
		tag = "*"
	}
	var preds []string
	if c.id != "" {
		preds = append(preds, "@id="+xpathLiteral(c.id))
	}
	for _, class := range c.classes {
		preds = append(preds, fmt.Sprintf("contains(concat(' ', normalize-space(@class), ' '), ' %s ')", class))
	}
	for _, attr := range c.attrs {
		if attr.hasValue {
			preds = append(preds, "@"+attr.name+"="+xpathLiteral(attr.value))
		} else {
			preds = append(preds, "@"+attr.name)
		}
	}
	if len(preds) == 0 {
		return tag
	}
	return tag + "[" + strings.Join(preds, " and ") + "]"
}

func compileSelector(selector string) (string, error) {
	steps, err := parseSelector(selector)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(".")
	for _, st := range steps {
		if st.child {
			b.WriteString("/")
		} else {
			// descendant:: keeps document order; "//" groups matches by parent.
			b.WriteString("/descendant::")
		}
		b.WriteString(st.sel.xpath())
	}
	return b.String(), nil
}

// queryNodes evaluates selector against the descendants of top.
func queryNodes(top *html.Node, selector string, first bool) []*html.Node {
	expr, err := compileSelector(selector)
	if err != nil {
		return nil
	}
	if first {
		n, err := htmlquery.Query(top, expr)
		if err != nil || n == nil {
			return nil
		}
		return []*html.Node{n}
	}
	nodes, err := htmlquery.QueryAll(top, expr)
	if err != nil {
		return nil
	}
	return nodes
}

// matches reports whether n satisfies a single compound selector.
func (c compound) matches(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	if c.tag != "" && c.tag != "*" && n.Data != c.tag {
		return false
	}
	if c.id != "" && attrValue(n, "id") != c.id {
		return false
	}
	if len(c.classes) > 0 {
		have := strings.Fields(attrValue(n, "class"))
		for _, want := range c.classes {
			if !containsString(have, want) {
				return false
			}
		}
	}
	for _, attr := range c.attrs {
		value, ok := lookupAttr(n, attr.name)
		if !ok || attr.hasValue && value != attr.value {
			return false
		}
	}
	return true
}

// matchSteps walks ancestors right-to-left to evaluate combinators.
func matchSteps(n *html.Node, steps []step) bool {
	if len(steps) == 0 {
		return true
	}
	last := steps[len(steps)-1]
	if !last.sel.matches(n) {
		return false
	}
	rest := steps[:len(steps)-1]
	if len(rest) == 0 {
		return true
	}
	if last.child {
		return matchSteps(n.Parent, rest)
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if matchSteps(p, rest) {
			return true
		}
	}
	return false
}

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
