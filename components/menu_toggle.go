package components

import (
	"fmt"

	frontend "github.com/goliatone/go-govuk-frontend"
	"github.com/goliatone/go-govuk-frontend/dom"
)

// menuToggle shows a navigation menu unconditionally above a breakpoint and
// behind a toggle button below it.
type menuToggle struct {
	button *dom.Element
	menu   *dom.Element
	mql    *dom.MediaQueryList
	open   bool
}

// newMenuToggle binds the toggle found by selector inside root. A root without
// a toggle yields nil and no error; the menu is then always visible.
func newMenuToggle(base frontend.Base, selector, buttonID, breakpoint string) (*menuToggle, error) {
	button := base.Root.QuerySelector(selector)
	if button == nil {
		return nil, nil
	}

	menuID := button.GetAttribute("aria-controls")
	if menuID == "" {
		return nil, base.ElementError(buttonID + " attribute (`aria-controls`)")
	}
	menu := base.Document.GetElementByID(menuID)
	if menu == nil {
		return nil, base.ElementError(fmt.Sprintf("Navigation (`<ul id=\"%s\">`)", menuID))
	}

	t := &menuToggle{button: button, menu: menu}
	t.mql = base.Document.MatchMedia(fmt.Sprintf("(min-width: %s)", breakpoint))
	t.mql.AddChangeListener(func(bool) {
		t.checkMode()
	})
	t.checkMode()

	button.AddEventListener("click", func(*dom.Event) {
		t.open = !t.open
		t.checkMode()
	})
	return t, nil
}

func (t *menuToggle) checkMode() {
	if t.mql.Matches() {
		t.menu.RemoveAttribute("hidden")
		t.button.SetAttribute("hidden", "")
		return
	}

	t.button.RemoveAttribute("hidden")
	t.button.SetAttribute("aria-expanded", boolAttr(t.open))
	if t.open {
		t.menu.RemoveAttribute("hidden")
	} else {
		t.menu.SetAttribute("hidden", "")
	}
}
