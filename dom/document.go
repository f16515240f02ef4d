// Package dom is a small, single-threaded document model over golang.org/x/net/html.
//
// It provides the pieces of the browser runtime the components rely on:
// element wrappers with stable identity, attribute and class helpers, a
// CSS-subset selector engine backed by htmlquery, synchronous event dispatch
// with bubbling, a deterministic timer clock, session storage, media queries
// and document level registration guards.
//
// A Document is not safe for concurrent use. Listeners and timers run on the
// goroutine that dispatches events or advances the clock.
package dom

import (
	"bytes"
	"io"
	"net/url"
	"strings"

	"github.com/antchfx/htmlquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const defaultLocation = "http://localhost/"

// Document wraps a parsed HTML tree.
type Document struct {
	root     *html.Node
	elements map[*html.Node]*Element

	listeners listenerSet
	window    listenerSet

	active   *Element
	scrolled *Element
	location *url.URL
	storage  Storage
	clock    *Clock
	logger   *zap.Logger

	viewportWidth float64
	media         map[string]*MediaQueryList
	guards        map[string]struct{}
	navigations   []string
}

// Option configures a Document during construction
type Option func(*Document)

// WithLocation sets the document URL used to resolve links and hashes.
func WithLocation(raw string) Option {
	return func(d *Document) {
		if u, err := url.Parse(raw); err == nil {
			d.location = u
		}
	}
}

// WithSessionStorage replaces the default in-memory session storage.
func WithSessionStorage(storage Storage) Option {
	return func(d *Document) {
		if storage != nil {
			d.storage = storage
		}
	}
}

// WithClock shares a clock between documents.
func WithClock(clock *Clock) Option {
	return func(d *Document) {
		if clock != nil {
			d.clock = clock
		}
	}
}

// WithLogger sets the logger used by components bound to this document.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Document) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithViewportWidth sets the viewport width in CSS pixels used by media queries.
func WithViewportWidth(px float64) Option {
	return func(d *Document) {
		d.viewportWidth = px
	}
}

// Parse reads an HTML document.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	root, err := htmlquery.Parse(r)
	if err != nil {
		return nil, err
	}
	return newDocument(root, opts...), nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(source string, opts ...Option) (*Document, error) {
	return Parse(strings.NewReader(source), opts...)
}

func newDocument(root *html.Node, opts ...Option) *Document {
	loc, _ := url.Parse(defaultLocation)
	d := &Document{
		root:          root,
		elements:      make(map[*html.Node]*Element),
		location:      loc,
		viewportWidth: 1024,
		media:         make(map[string]*MediaQueryList),
		guards:        make(map[string]struct{}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	if d.storage == nil {
		d.storage = NewMemoryStorage()
	}
	if d.clock == nil {
		d.clock = NewClock()
	}
	if d.logger == nil {
		d.logger = zap.NewNop()
	}
	return d
}

// Wrap returns the Element for an element node, creating it on first use.
func (d *Document) Wrap(n *html.Node) *Element {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	if el, ok := d.elements[n]; ok {
		return el
	}
	el := &Element{doc: d, node: n}
	d.elements[n] = el
	return el
}

func (d *Document) wrapAll(nodes []*html.Node) []*Element {
	out := make([]*Element, 0, len(nodes))
	for _, n := range nodes {
		if el := d.Wrap(n); el != nil {
			out = append(out, el)
		}
	}
	return out
}

// DocumentElement returns the <html> element.
func (d *Document) DocumentElement() *Element {
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return d.Wrap(c)
		}
	}
	return nil
}

// Body returns the <body> element.
func (d *Document) Body() *Element {
	return d.Wrap(htmlquery.FindOne(d.root, "//body"))
}

// GetElementByID returns the first element with the given id.
func (d *Document) GetElementByID(id string) *Element {
	if id == "" {
		return nil
	}
	return d.QuerySelector("#" + id)
}

// QuerySelector returns the first element in the document matching selector.
func (d *Document) QuerySelector(selector string) *Element {
	nodes := queryNodes(d.root, selector, true)
	if len(nodes) == 0 {
		return nil
	}
	return d.Wrap(nodes[0])
}

// QuerySelectorAll returns all elements in the document matching selector.
func (d *Document) QuerySelectorAll(selector string) []*Element {
	return d.wrapAll(queryNodes(d.root, selector, false))
}

// CreateElement returns a detached element.
func (d *Document) CreateElement(tag string) *Element {
	tag = strings.ToLower(tag)
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	return d.Wrap(n)
}

// ActiveElement returns the focused element, or nil.
func (d *Document) ActiveElement() *Element {
	return d.active
}

// ScrolledTo returns the element most recently scrolled into view.
func (d *Document) ScrolledTo() *Element {
	return d.scrolled
}

// AddEventListener registers a document level listener. Events dispatched on
// elements bubble to the document after the element ancestors.
func (d *Document) AddEventListener(eventType string, fn Listener, opts ...ListenerOption) func() {
	return d.listeners.add(eventType, fn, opts...)
}

// Dispatch delivers an event to document listeners only.
func (d *Document) Dispatch(ev *Event) bool {
	d.listeners.fire(ev)
	return !ev.DefaultPrevented()
}

// AddWindowListener registers a listener for window events such as pageshow
// and hashchange.
func (d *Document) AddWindowListener(eventType string, fn Listener, opts ...ListenerOption) func() {
	return d.window.add(eventType, fn, opts...)
}

// DispatchWindowEvent fires a window event.
func (d *Document) DispatchWindowEvent(eventType string) {
	d.window.fire(NewEvent(eventType))
}

// Location returns a copy of the current document URL.
func (d *Document) Location() url.URL {
	return *d.location
}

// Hash returns the location fragment including the leading '#', or "".
func (d *Document) Hash() string {
	if d.location.Fragment == "" {
		return ""
	}
	return "#" + d.location.Fragment
}

// SetHash updates the location fragment and fires hashchange when it changes.
func (d *Document) SetHash(hash string) {
	hash = strings.TrimPrefix(hash, "#")
	if hash == d.location.Fragment {
		return
	}
	d.location.Fragment = hash
	d.DispatchWindowEvent("hashchange")
}

// Navigate records a navigation. Same-document fragment links only update the hash.
func (d *Document) Navigate(href string) {
	target, err := d.location.Parse(href)
	if err != nil {
		return
	}
	current := *d.location
	current.Fragment = ""
	next := *target
	next.Fragment = ""
	if current.String() == next.String() && target.Fragment != "" {
		d.SetHash(target.Fragment)
		return
	}
	d.navigations = append(d.navigations, target.String())
	d.location = target
}

// Navigations returns every cross-document navigation requested so far.
func (d *Document) Navigations() []string {
	return append([]string(nil), d.navigations...)
}

// SessionStorage returns the document session storage.
func (d *Document) SessionStorage() Storage {
	return d.storage
}

// Clock returns the document timer clock.
func (d *Document) Clock() *Clock {
	return d.clock
}

// Logger returns the document logger.
func (d *Document) Logger() *zap.Logger {
	return d.logger
}

// RegisterOnce runs fn the first time key is registered on this document and
// reports whether it ran. It guards document wide listeners that must only be
// attached once regardless of how many components request them.
func (d *Document) RegisterOnce(key string, fn func()) bool {
	if _, ok := d.guards[key]; ok {
		return false
	}
	d.guards[key] = struct{}{}
	if fn != nil {
		fn()
	}
	return true
}

// Registered reports whether key was registered with RegisterOnce.
func (d *Document) Registered(key string) bool {
	_, ok := d.guards[key]
	return ok
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// HTML returns the rendered document.
func (d *Document) HTML() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}
