package dom

import (
	"strings"
	"unicode/utf16"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// Element wraps an element node. Wrappers are unique per node within a Document
// so listeners and runtime state survive repeated lookups.
type Element struct {
	doc       *Document
	node      *html.Node
	listeners listenerSet

	value    string
	valueSet bool
	files    []File
}

// File describes a file selected in a file input.
type File struct {
	Name string
	Size int64
	Type string
}

// Node returns the underlying html node.
func (e *Element) Node() *html.Node {
	return e.node
}

// Document returns the owning document.
func (e *Element) Document() *Document {
	return e.doc
}

// TagName returns the lower case tag name.
func (e *Element) TagName() string {
	return e.node.Data
}

// ID returns the id attribute.
func (e *Element) ID() string {
	return e.GetAttribute("id")
}

// SetID sets the id attribute.
func (e *Element) SetID(id string) {
	e.SetAttribute("id", id)
}

func lookupAttr(n *html.Node, name string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == name {
			return attr.Val, true
		}
	}
	return "", false
}

func attrValue(n *html.Node, name string) string {
	v, _ := lookupAttr(n, name)
	return v
}

// Attr returns the attribute value and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	return lookupAttr(e.node, strings.ToLower(name))
}

// GetAttribute returns the attribute value or "".
func (e *Element) GetAttribute(name string) string {
	v, _ := e.Attr(name)
	return v
}

// HasAttribute reports whether the attribute is present.
func (e *Element) HasAttribute(name string) bool {
	_, ok := e.Attr(name)
	return ok
}

// SetAttribute sets or replaces an attribute.
func (e *Element) SetAttribute(name, value string) {
	name = strings.ToLower(name)
	for i, attr := range e.node.Attr {
		if attr.Namespace == "" && attr.Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttribute removes an attribute if present.
func (e *Element) RemoveAttribute(name string) {
	name = strings.ToLower(name)
	attrs := e.node.Attr[:0]
	for _, attr := range e.node.Attr {
		if attr.Namespace == "" && attr.Key == name {
			continue
		}
		attrs = append(attrs, attr)
	}
	e.node.Attr = attrs
}

// Attributes returns a copy of the attribute list in document order.
func (e *Element) Attributes() []html.Attribute {
	return append([]html.Attribute(nil), e.node.Attr...)
}

// ClassList returns the class tokens.
func (e *Element) ClassList() []string {
	return strings.Fields(e.GetAttribute("class"))
}

// ClassName returns the raw class attribute.
func (e *Element) ClassName() string {
	return e.GetAttribute("class")
}

// SetClassName replaces the class attribute.
func (e *Element) SetClassName(value string) {
	e.SetAttribute("class", value)
}

// HasClass reports whether the class token is present.
func (e *Element) HasClass(name string) bool {
	return containsString(e.ClassList(), name)
}

// AddClass adds class tokens that are not yet present.
func (e *Element) AddClass(names ...string) {
	classes := e.ClassList()
	changed := false
	for _, name := range names {
		if name == "" || containsString(classes, name) {
			continue
		}
		classes = append(classes, name)
		changed = true
	}
	if changed || !e.HasAttribute("class") {
		e.SetAttribute("class", strings.Join(classes, " "))
	}
}

// RemoveClass removes class tokens.
func (e *Element) RemoveClass(names ...string) {
	if !e.HasAttribute("class") {
		return
	}
	classes := e.ClassList()
	kept := classes[:0]
	for _, class := range classes {
		if containsString(names, class) {
			continue
		}
		kept = append(kept, class)
	}
	e.SetAttribute("class", strings.Join(kept, " "))
}

// ToggleClass adds the class when force is true and removes it otherwise.
func (e *Element) ToggleClass(name string, force bool) {
	if force {
		e.AddClass(name)
		return
	}
	e.RemoveClass(name)
}

// Dataset returns the data-* attributes keyed the way HTMLElement.dataset
// exposes them: the "data-" prefix is dropped and every dash followed by a
// lower case ASCII letter is removed with the letter upper cased.
func (e *Element) Dataset() map[string]string {
	out := make(map[string]string)
	for _, attr := range e.node.Attr {
		if attr.Namespace != "" || !strings.HasPrefix(attr.Key, "data-") {
			continue
		}
		out[datasetKey(attr.Key[len("data-"):])] = attr.Val
	}
	return out
}

func datasetKey(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '-' && i+1 < len(name) && name[i+1] >= 'a' && name[i+1] <= 'z' {
			b.WriteByte(name[i+1] - 'a' + 'A')
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// TextContent returns the concatenated text of all descendant text nodes.
func (e *Element) TextContent() string {
	return htmlquery.InnerText(e.node)
}

// SetTextContent replaces all children with a single text node.
func (e *Element) SetTextContent(text string) {
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}
	if text != "" {
		e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

// InnerHTML renders the children of the element.
func (e *Element) InnerHTML() string {
	return htmlquery.OutputHTML(e.node, false)
}

// OuterHTML renders the element itself.
func (e *Element) OuterHTML() string {
	return htmlquery.OutputHTML(e.node, true)
}

// Parent returns the parent element, or nil at the top of the tree.
func (e *Element) Parent() *Element {
	if e.node.Parent == nil {
		return nil
	}
	return e.doc.Wrap(e.node.Parent)
}

// Children returns the child elements.
func (e *Element) Children() []*Element {
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.Wrap(c))
		}
	}
	return out
}

// NextElementSibling returns the next sibling element.
func (e *Element) NextElementSibling() *Element {
	for s := e.node.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return e.doc.Wrap(s)
		}
	}
	return nil
}

// PreviousElementSibling returns the previous sibling element.
func (e *Element) PreviousElementSibling() *Element {
	for s := e.node.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			return e.doc.Wrap(s)
		}
	}
	return nil
}

func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// AppendChild moves child to the end of the element children.
func (e *Element) AppendChild(child *Element) {
	if child == nil {
		return
	}
	detach(child.node)
	e.node.AppendChild(child.node)
}

// Prepend moves child to the start of the element children.
func (e *Element) Prepend(child *Element) {
	if child == nil {
		return
	}
	detach(child.node)
	if e.node.FirstChild == nil {
		e.node.AppendChild(child.node)
		return
	}
	e.node.InsertBefore(child.node, e.node.FirstChild)
}

// After inserts sibling directly after the element.
func (e *Element) After(sibling *Element) {
	if sibling == nil || e.node.Parent == nil {
		return
	}
	detach(sibling.node)
	if e.node.NextSibling == nil {
		e.node.Parent.AppendChild(sibling.node)
		return
	}
	e.node.Parent.InsertBefore(sibling.node, e.node.NextSibling)
}

// Before inserts sibling directly before the element.
func (e *Element) Before(sibling *Element) {
	if sibling == nil || e.node.Parent == nil {
		return
	}
	detach(sibling.node)
	e.node.Parent.InsertBefore(sibling.node, e.node)
}

// Remove detaches the element from its parent.
func (e *Element) Remove() {
	if e.doc.active == e {
		e.doc.active = nil
	}
	detach(e.node)
}

// MoveChildrenTo moves every child node, text included, to dst.
func (e *Element) MoveChildrenTo(dst *Element) {
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		dst.node.AppendChild(c)
		c = next
	}
}

// Contains reports whether other is the element or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	if other == nil {
		return false
	}
	for n := other.node; n != nil; n = n.Parent {
		if n == e.node {
			return true
		}
	}
	return false
}

// QuerySelector returns the first descendant matching selector.
func (e *Element) QuerySelector(selector string) *Element {
	nodes := queryNodes(e.node, selector, true)
	if len(nodes) == 0 {
		return nil
	}
	return e.doc.Wrap(nodes[0])
}

// QuerySelectorAll returns all descendants matching selector.
func (e *Element) QuerySelectorAll(selector string) []*Element {
	return e.doc.wrapAll(queryNodes(e.node, selector, false))
}

// Matches reports whether the element satisfies selector.
func (e *Element) Matches(selector string) bool {
	steps, err := parseSelector(selector)
	if err != nil {
		return false
	}
	return matchSteps(e.node, steps)
}

// Closest returns the nearest ancestor-or-self matching selector.
func (e *Element) Closest(selector string) *Element {
	steps, err := parseSelector(selector)
	if err != nil {
		return nil
	}
	for n := e.node; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && matchSteps(n, steps) {
			return e.doc.Wrap(n)
		}
	}
	return nil
}

// Type returns the lower case type attribute of form controls. Inputs default
// to "text" and buttons to "submit".
func (e *Element) Type() string {
	t := strings.ToLower(e.GetAttribute("type"))
	if t != "" {
		return t
	}
	switch e.TagName() {
	case "input":
		return "text"
	case "button":
		return "submit"
	}
	return ""
}

// Value returns the current control value.
func (e *Element) Value() string {
	if e.valueSet {
		return e.value
	}
	if e.TagName() == "textarea" {
		return e.TextContent()
	}
	return e.GetAttribute("value")
}

// SetValue sets the current control value without firing events.
func (e *Element) SetValue(value string) {
	e.value = value
	e.valueSet = true
}

// Checked reports the checked state of checkboxes and radios.
func (e *Element) Checked() bool {
	return e.HasAttribute("checked")
}

// SetChecked sets the checked state.
func (e *Element) SetChecked(checked bool) {
	if checked {
		e.SetAttribute("checked", "")
		return
	}
	e.RemoveAttribute("checked")
}

// Disabled reports whether the disabled attribute is set.
func (e *Element) Disabled() bool {
	return e.HasAttribute("disabled")
}

// Form returns the form owning a control.
func (e *Element) Form() *Element {
	if id := e.GetAttribute("form"); id != "" {
		if form := e.doc.GetElementByID(id); form != nil && form.TagName() == "form" {
			return form
		}
	}
	return e.Closest("form")
}

// Href returns the href attribute resolved against the document location.
func (e *Element) Href() string {
	raw, ok := e.Attr("href")
	if !ok {
		return ""
	}
	u, err := e.doc.location.Parse(raw)
	if err != nil {
		return raw
	}
	return u.String()
}

// Hash returns the fragment of the resolved href including '#', or "".
func (e *Element) Hash() string {
	raw, ok := e.Attr("href")
	if !ok {
		return ""
	}
	u, err := e.doc.location.Parse(raw)
	if err != nil || u.Fragment == "" {
		return ""
	}
	return "#" + u.Fragment
}

// Files returns the files selected in a file input.
func (e *Element) Files() []File {
	return append([]File(nil), e.files...)
}

// SetFiles replaces the selection of a file input without firing events.
func (e *Element) SetFiles(files ...File) {
	e.files = append([]File(nil), files...)
}

// TextLength returns the length of s in UTF-16 code units, which is how
// browsers measure form control values.
func TextLength(s string) int {
	n := 0
	for _, r := range s {
		n += len(utf16.Encode([]rune{r}))
	}
	return n
}
