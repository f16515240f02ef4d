package components

import (
	"fmt"
	"net/url"
	"strings"

	frontend "github.com/goliatone/go-govuk-frontend"
	"github.com/goliatone/go-govuk-frontend/dom"
)

const skipLinkFocusedClass = "govuk-skip-link-focused-element"

// SkipLinkDefinition describes govuk-skip-link.
var SkipLinkDefinition = &frontend.Definition{
	ModuleName:  "govuk-skip-link",
	ElementType: frontend.HTMLAnchorElement,
}

// SkipLinkConstructor creates skip links with frontend.CreateAll.
var SkipLinkConstructor = frontend.Constructor[*SkipLink]{
	Definition: SkipLinkDefinition,
	New: func(root *dom.Element, _ frontend.Object) (*SkipLink, error) {
		return NewSkipLink(root)
	},
}

// SkipLink moves focus to its same page target, marking it with the focused
// element class until it loses focus.
type SkipLink struct {
	frontend.Base

	target *dom.Element
}

// NewSkipLink binds a skip link to root. Links to another page are left alone.
func NewSkipLink(root *dom.Element) (*SkipLink, error) {
	base, err := frontend.Setup(SkipLinkDefinition, root, nil)
	if err != nil {
		return nil, err
	}

	href := root.GetAttribute("href")
	link, err := url.Parse(root.Href())
	if err != nil || !link.IsAbs() {
		return nil, frontend.ElementErrorf(base.Module, "Target link (`href=\"%s\"`) is invalid", href)
	}

	location := base.Document.Location()
	if link.Scheme != location.Scheme || link.Host != location.Host || link.Path != location.Path {
		return &SkipLink{Base: base}, nil
	}

	targetID := strings.TrimPrefix(root.Hash(), "#")
	if targetID == "" {
		return nil, frontend.ElementErrorf(base.Module, "Target link (`href=\"%s\"`) has no hash fragment", href)
	}
	target := base.Document.GetElementByID(targetID)
	if target == nil {
		return nil, base.ElementError(fmt.Sprintf("Target content (`id=\"%s\"`)", targetID))
	}

	s := &SkipLink{Base: base, target: target}
	root.AddEventListener("click", func(*dom.Event) {
		frontend.SetFocus(s.target, frontend.FocusOptions{
			OnBeforeFocus: func() { s.target.AddClass(skipLinkFocusedClass) },
			OnBlur:        func() { s.target.RemoveClass(skipLinkFocusedClass) },
		})
	})
	return s, nil
}

// Target returns the element the link focuses, or nil for links to another page.
func (s *SkipLink) Target() *dom.Element {
	return s.target
}
