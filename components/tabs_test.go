package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	frontend "github.com/goliatone/go-govuk-frontend"
	"github.com/goliatone/go-govuk-frontend/dom"
)

const tabsMarkup = `
<div class="govuk-tabs" data-module="govuk-tabs" id="tabs">
  <h2 class="govuk-tabs__title">Contents</h2>
  <ul class="govuk-tabs__list">
    <li class="govuk-tabs__list-item govuk-tabs__list-item--selected"><a class="govuk-tabs__tab" href="#past-day">Past day</a></li>
    <li class="govuk-tabs__list-item"><a class="govuk-tabs__tab" href="#past-week">Past week</a></li>
    <li class="govuk-tabs__list-item"><a class="govuk-tabs__tab" href="#past-month">Past month</a></li>
  </ul>
  <div class="govuk-tabs__panel" id="past-day"><h2 class="govuk-heading-l">Past day</h2></div>
  <div class="govuk-tabs__panel govuk-tabs__panel--hidden" id="past-week"><h2 class="govuk-heading-l">Past week</h2></div>
  <div class="govuk-tabs__panel govuk-tabs__panel--hidden" id="past-month"><h2 class="govuk-heading-l">Past month</h2></div>
</div>`

func tabsDoc(t *testing.T, opts ...dom.Option) (*dom.Document, *Tabs) {
	t.Helper()
	doc := parseDoc(t, tabsMarkup, opts...)
	tabs, err := NewTabs(byID(t, doc, "tabs"))
	require.NoError(t, err)
	return doc, tabs
}

func TestTabsSetup(t *testing.T) {
	doc, tabs := tabsDoc(t)

	assert.Equal(t, "tablist", doc.QuerySelector(".govuk-tabs__list").GetAttribute("role"))
	for _, item := range doc.QuerySelectorAll(".govuk-tabs__list-item") {
		assert.Equal(t, "presentation", item.GetAttribute("role"))
	}

	first := byID(t, doc, "tab_past-day")
	assert.Same(t, first, tabs.Selected())
	assert.Equal(t, "tab", first.GetAttribute("role"))
	assert.Equal(t, "past-day", first.GetAttribute("aria-controls"))
	assert.Equal(t, "true", first.GetAttribute("aria-selected"))
	assert.Equal(t, "0", first.GetAttribute("tabindex"))

	second := byID(t, doc, "tab_past-week")
	assert.Equal(t, "false", second.GetAttribute("aria-selected"))
	assert.Equal(t, "-1", second.GetAttribute("tabindex"))

	panel := byID(t, doc, "past-week")
	assert.Equal(t, "tabpanel", panel.GetAttribute("role"))
	assert.Equal(t, "tab_past-week", panel.GetAttribute("aria-labelledby"))
	assert.True(t, panel.HasClass("govuk-tabs__panel--hidden"))
	assert.False(t, byID(t, doc, "past-day").HasClass("govuk-tabs__panel--hidden"))
}

func TestTabsClick(t *testing.T) {
	doc, tabs := tabsDoc(t)

	byID(t, doc, "tab_past-week").Click()

	assert.Same(t, byID(t, doc, "tab_past-week"), tabs.Selected())
	assert.Equal(t, "#past-week", doc.Hash())
	assert.True(t, byID(t, doc, "past-day").HasClass("govuk-tabs__panel--hidden"))
	assert.False(t, byID(t, doc, "past-week").HasClass("govuk-tabs__panel--hidden"))
	assert.Empty(t, doc.Navigations())
}

func TestTabsHashChange(t *testing.T) {
	doc, tabs := tabsDoc(t)

	doc.SetHash("past-month")

	month := byID(t, doc, "tab_past-month")
	assert.Same(t, month, tabs.Selected())
	assert.Same(t, month, doc.ActiveElement())
	assert.False(t, byID(t, doc, "past-month").HasClass("govuk-tabs__panel--hidden"))

	doc.SetHash("unrelated")
	assert.Same(t, month, tabs.Selected())
}

func TestTabsKeyboard(t *testing.T) {
	doc, tabs := tabsDoc(t)

	first := byID(t, doc, "tab_past-day")
	assert.False(t, first.KeyDown("ArrowRight", false))
	assert.Same(t, byID(t, doc, "tab_past-week"), tabs.Selected())
	assert.Same(t, byID(t, doc, "tab_past-week"), doc.ActiveElement())
	assert.Equal(t, "#past-week", doc.Hash())

	byID(t, doc, "tab_past-week").KeyDown("ArrowRight", false)
	byID(t, doc, "tab_past-month").KeyDown("ArrowRight", false)
	assert.Same(t, byID(t, doc, "tab_past-month"), tabs.Selected())

	byID(t, doc, "tab_past-month").KeyDown("Left", false)
	assert.Same(t, byID(t, doc, "tab_past-week"), tabs.Selected())

	assert.True(t, byID(t, doc, "tab_past-week").KeyDown("Enter", false))
}

func TestTabsInitialHash(t *testing.T) {
	doc, tabs := tabsDoc(t, dom.WithLocation("http://localhost/results#past-month"))

	assert.Same(t, byID(t, doc, "tab_past-month"), tabs.Selected())
	assert.True(t, byID(t, doc, "past-day").HasClass("govuk-tabs__panel--hidden"))
}

func TestTabsResponsive(t *testing.T) {
	doc, _ := tabsDoc(t, dom.WithViewportWidth(320))

	list := doc.QuerySelector(".govuk-tabs__list")
	assert.False(t, list.HasAttribute("role"))
	tab := doc.QuerySelector(`a[href="#past-week"]`)
	assert.False(t, tab.HasAttribute("role"))
	assert.False(t, byID(t, doc, "past-week").HasClass("govuk-tabs__panel--hidden"))

	doc.SetViewportWidth(1024)
	assert.Equal(t, "tablist", list.GetAttribute("role"))
	assert.Equal(t, "tab", tab.GetAttribute("role"))
	assert.Equal(t, 1, tab.ListenerCount("click"))

	doc.SetViewportWidth(320)
	assert.False(t, list.HasAttribute("role"))
	assert.False(t, tab.HasAttribute("id"))
	assert.Zero(t, tab.ListenerCount("click"))
	assert.False(t, byID(t, doc, "past-week").HasClass("govuk-tabs__panel--hidden"))
}

func TestTabsErrors(t *testing.T) {
	doc := parseDoc(t, `
<div data-module="govuk-tabs" id="no-links"></div>
<div data-module="govuk-tabs" id="no-list"><a class="govuk-tabs__tab" href="#a">A</a></div>
<div data-module="govuk-tabs" id="no-items"><ul class="govuk-tabs__list"><a class="govuk-tabs__tab" href="#a">A</a></ul></div>`)

	tests := map[string]string{
		"no-links": "govuk-tabs: Links (`<a class=\"govuk-tabs__tab\">`) not found",
		"no-list":  "govuk-tabs: List (`<ul class=\"govuk-tabs__list\">`) not found",
		"no-items": "govuk-tabs: List items (`<li class=\"govuk-tabs__list-item\">`) not found",
	}
	for id, want := range tests {
		_, err := NewTabs(byID(t, doc, id))
		assert.True(t, frontend.IsElementError(err), id)
		assert.EqualError(t, err, want, id)
	}
}
