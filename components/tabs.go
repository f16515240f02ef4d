package components

import (
	"fmt"
	"strings"

	frontend "github.com/goliatone/go-govuk-frontend"
	"github.com/goliatone/go-govuk-frontend/dom"
)

const (
	tabsTabSelector       = "a.govuk-tabs__tab"
	tabsSelectedItemClass = "govuk-tabs__list-item--selected"
	tabsPanelHiddenClass  = "govuk-tabs__panel--hidden"
)

// TabsDefinition describes govuk-tabs.
var TabsDefinition = &frontend.Definition{ModuleName: "govuk-tabs"}

// TabsConstructor creates tabs with frontend.CreateAll.
var TabsConstructor = frontend.Constructor[*Tabs]{
	Definition: TabsDefinition,
	New: func(root *dom.Element, _ frontend.Object) (*Tabs, error) {
		return NewTabs(root)
	},
}

// Tabs turns a list of in page links into a tab interface from the tablet
// breakpoint up and restores the plain links below it.
type Tabs struct {
	frontend.Base

	tabs      []*dom.Element
	tabList   *dom.Element
	listItems []*dom.Element
	mql       *dom.MediaQueryList

	changingHash bool
	removers     []func()
}

// NewTabs binds tabs to root.
func NewTabs(root *dom.Element) (*Tabs, error) {
	base, err := frontend.Setup(TabsDefinition, root, nil)
	if err != nil {
		return nil, err
	}

	t := &Tabs{Base: base}
	t.tabs = root.QuerySelectorAll(tabsTabSelector)
	if len(t.tabs) == 0 {
		return nil, base.ElementError("Links (`<a class=\"govuk-tabs__tab\">`)")
	}
	t.tabList = root.QuerySelector(".govuk-tabs__list")
	if t.tabList == nil {
		return nil, base.ElementError("List (`<ul class=\"govuk-tabs__list\">`)")
	}
	t.listItems = root.QuerySelectorAll("li.govuk-tabs__list-item")
	if len(t.listItems) == 0 {
		return nil, base.ElementError("List items (`<li class=\"govuk-tabs__list-item\">`)")
	}

	t.mql = base.Document.MatchMedia(fmt.Sprintf("(min-width: %s)", tabletBreakpoint))
	t.mql.AddChangeListener(func(bool) {
		t.checkMode()
	})
	t.checkMode()
	return t, nil
}

func (t *Tabs) checkMode() {
	if t.mql.Matches() {
		t.setup()
		return
	}
	t.teardown()
}

func (t *Tabs) setup() {
	if len(t.removers) > 0 {
		return
	}

	t.tabList.SetAttribute("role", "tablist")
	for _, item := range t.listItems {
		item.SetAttribute("role", "presentation")
	}
	for _, tab := range t.tabs {
		t.setAttributes(tab)
		t.removers = append(t.removers,
			tab.AddEventListener("click", t.onTabClick),
			tab.AddEventListener("keydown", t.onTabKeydown),
		)
		t.hideTab(tab)
	}

	active := t.tabForHash(t.Document.Hash())
	if active == nil {
		active = t.tabs[0]
	}
	t.showTab(active)

	t.removers = append(t.removers, t.Document.AddWindowListener("hashchange", func(*dom.Event) {
		t.onHashChange()
	}))
}

func (t *Tabs) teardown() {
	t.tabList.RemoveAttribute("role")
	for _, item := range t.listItems {
		item.RemoveAttribute("role")
	}
	for _, remove := range t.removers {
		remove()
	}
	t.removers = nil
	for _, tab := range t.tabs {
		t.unsetAttributes(tab)
	}
}

func (t *Tabs) onHashChange() {
	tab := t.tabForHash(t.Document.Hash())
	if tab == nil {
		return
	}
	if t.changingHash {
		t.changingHash = false
		return
	}

	previous := t.currentTab()
	if previous == nil {
		return
	}
	t.hideTab(previous)
	t.showTab(tab)
	tab.Focus()
}

func (t *Tabs) tabForHash(hash string) *dom.Element {
	if hash == "" {
		return nil
	}
	return t.Root.QuerySelector(fmt.Sprintf(`%s[href="%s"]`, tabsTabSelector, hash))
}

func (t *Tabs) currentTab() *dom.Element {
	return t.Root.QuerySelector("." + tabsSelectedItemClass + " " + tabsTabSelector)
}

func (t *Tabs) panelID(tab *dom.Element) string {
	href := tab.GetAttribute("href")
	if i := strings.IndexByte(href, '#'); i >= 0 {
		return href[i+1:]
	}
	return ""
}

func (t *Tabs) panel(tab *dom.Element) *dom.Element {
	id := t.panelID(tab)
	if id == "" {
		return nil
	}
	return t.Root.QuerySelector("#" + id)
}

func (t *Tabs) setAttributes(tab *dom.Element) {
	panelID := t.panelID(tab)
	tab.SetID("tab_" + panelID)
	tab.SetAttribute("role", "tab")
	tab.SetAttribute("aria-controls", panelID)
	tab.SetAttribute("aria-selected", "false")
	tab.SetAttribute("tabindex", "-1")

	if panel := t.panel(tab); panel != nil {
		panel.SetAttribute("role", "tabpanel")
		panel.SetAttribute("aria-labelledby", tab.ID())
		panel.AddClass(tabsPanelHiddenClass)
	}
}

func (t *Tabs) unsetAttributes(tab *dom.Element) {
	for _, name := range []string{"id", "role", "aria-controls", "aria-selected", "tabindex"} {
		tab.RemoveAttribute(name)
	}
	if panel := t.panel(tab); panel != nil {
		panel.RemoveAttribute("role")
		panel.RemoveAttribute("aria-labelledby")
		panel.RemoveClass(tabsPanelHiddenClass)
	}
}

func (t *Tabs) onTabClick(ev *dom.Event) {
	current := t.currentTab()
	next := ev.CurrentTarget
	if current == nil || next == nil {
		return
	}
	ev.PreventDefault()
	t.hideTab(current)
	t.showTab(next)
	t.createHistoryEntry(next)
}

// createHistoryEntry updates the location hash without the hashchange
// handler switching tabs a second time.
func (t *Tabs) createHistoryEntry(tab *dom.Element) {
	panel := t.panel(tab)
	if panel == nil {
		return
	}
	if t.Document.Hash() == "#"+panel.ID() {
		return
	}
	t.changingHash = true
	t.Document.SetHash(panel.ID())
}

func (t *Tabs) onTabKeydown(ev *dom.Event) {
	switch ev.Key {
	case "ArrowLeft", "Left":
		t.activateSibling(false)
		ev.PreventDefault()
	case "ArrowRight", "Right":
		t.activateSibling(true)
		ev.PreventDefault()
	}
}

func (t *Tabs) activateSibling(forward bool) {
	current := t.currentTab()
	if current == nil || current.Parent() == nil {
		return
	}
	item := current.Parent().PreviousElementSibling()
	if forward {
		item = current.Parent().NextElementSibling()
	}
	if item == nil {
		return
	}
	next := item.QuerySelector(tabsTabSelector)
	if next == nil {
		return
	}
	t.hideTab(current)
	t.showTab(next)
	next.Focus()
	t.createHistoryEntry(next)
}

func (t *Tabs) hideTab(tab *dom.Element) {
	t.unhighlightTab(tab)
	if panel := t.panel(tab); panel != nil {
		panel.AddClass(tabsPanelHiddenClass)
	}
}

func (t *Tabs) showTab(tab *dom.Element) {
	t.highlightTab(tab)
	if panel := t.panel(tab); panel != nil {
		panel.RemoveClass(tabsPanelHiddenClass)
	}
}

func (t *Tabs) unhighlightTab(tab *dom.Element) {
	if item := tab.Parent(); item != nil {
		item.RemoveClass(tabsSelectedItemClass)
	}
	tab.SetAttribute("aria-selected", "false")
	tab.SetAttribute("tabindex", "-1")
}

func (t *Tabs) highlightTab(tab *dom.Element) {
	tab.SetAttribute("aria-selected", "true")
	if item := tab.Parent(); item != nil {
		item.AddClass(tabsSelectedItemClass)
	}
	tab.SetAttribute("tabindex", "0")
}

// Selected returns the selected tab link.
func (t *Tabs) Selected() *dom.Element {
	return t.currentTab()
}
