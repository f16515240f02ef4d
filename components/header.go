package components

import (
	frontend "github.com/goliatone/go-govuk-frontend"
	"github.com/goliatone/go-govuk-frontend/dom"
)

// HeaderDefinition describes govuk-header.
var HeaderDefinition = &frontend.Definition{ModuleName: "govuk-header"}

// HeaderConstructor creates headers with frontend.CreateAll.
var HeaderConstructor = frontend.Constructor[*Header]{
	Definition: HeaderDefinition,
	New: func(root *dom.Element, _ frontend.Object) (*Header, error) {
		return NewHeader(root)
	},
}

// Header collapses the header navigation behind a menu button below the
// desktop breakpoint.
type Header struct {
	frontend.Base

	toggle *menuToggle
}

// NewHeader binds a header to root.
func NewHeader(root *dom.Element) (*Header, error) {
	base, err := frontend.Setup(HeaderDefinition, root, nil)
	if err != nil {
		return nil, err
	}

	toggle, err := newMenuToggle(base, ".govuk-js-header-toggle",
		"Navigation button (`<button class=\"govuk-js-header-toggle\">`)", desktopBreakpoint)
	if err != nil {
		return nil, err
	}
	return &Header{Base: base, toggle: toggle}, nil
}

// MenuOpen reports whether the mobile menu is open.
func (h *Header) MenuOpen() bool {
	return h.toggle != nil && h.toggle.open
}
