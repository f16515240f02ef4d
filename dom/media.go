package dom

import (
	"strconv"
	"strings"
)

const pxPerEm = 16

// MediaQueryList tracks a min-width/max-width media query against the
// document viewport width.
type MediaQueryList struct {
	query     string
	minWidth  float64
	maxWidth  float64
	matches   bool
	listeners []*mediaListener
}

type mediaListener struct {
	fn func(matches bool)
}

// Media returns the query string.
func (m *MediaQueryList) Media() string {
	return m.query
}

// Matches reports whether the query currently applies.
func (m *MediaQueryList) Matches() bool {
	return m.matches
}

// AddChangeListener registers fn for changes of the match state.
func (m *MediaQueryList) AddChangeListener(fn func(matches bool)) func() {
	l := &mediaListener{fn: fn}
	m.listeners = append(m.listeners, l)
	return func() {
		for i, candidate := range m.listeners {
			if candidate == l {
				m.listeners = append(m.listeners[:i:i], m.listeners[i+1:]...)
				return
			}
		}
	}
}

func (m *MediaQueryList) evaluate(width float64) bool {
	if m.minWidth > 0 && width < m.minWidth {
		return false
	}
	if m.maxWidth > 0 && width > m.maxWidth {
		return false
	}
	return true
}

// MatchMedia returns the shared MediaQueryList for query. Only min-width and
// max-width features in px or em are understood; other features always match.
func (d *Document) MatchMedia(query string) *MediaQueryList {
	if mql, ok := d.media[query]; ok {
		return mql
	}
	mql := &MediaQueryList{query: query}
	for _, part := range strings.Split(query, "and") {
		part = strings.Trim(strings.TrimSpace(part), "()")
		name, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		px := parseLength(strings.TrimSpace(value))
		switch strings.TrimSpace(name) {
		case "min-width":
			mql.minWidth = px
		case "max-width":
			mql.maxWidth = px
		}
	}
	mql.matches = mql.evaluate(d.viewportWidth)
	d.media[query] = mql
	return mql
}

// ViewportWidth returns the viewport width in CSS pixels.
func (d *Document) ViewportWidth() float64 {
	return d.viewportWidth
}

// SetViewportWidth resizes the viewport and notifies media query listeners
// whose match state changed.
func (d *Document) SetViewportWidth(px float64) {
	d.viewportWidth = px
	for _, mql := range d.media {
		matches := mql.evaluate(px)
		if matches == mql.matches {
			continue
		}
		mql.matches = matches
		for _, l := range append([]*mediaListener(nil), mql.listeners...) {
			l.fn(matches)
		}
	}
}

func parseLength(raw string) float64 {
	scale := 1.0
	switch {
	case strings.HasSuffix(raw, "em"):
		raw = strings.TrimSuffix(raw, "em")
		scale = pxPerEm
	case strings.HasSuffix(raw, "px"):
		raw = strings.TrimSuffix(raw, "px")
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v * scale
}
