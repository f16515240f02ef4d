package components

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	frontend "github.com/goliatone/go-govuk-frontend"
	"github.com/goliatone/go-govuk-frontend/dom"
)

func TestButtonSpaceActivatesLink(t *testing.T) {
	doc := parseDoc(t, `<a href="/start" role="button" draggable="false" class="govuk-button govuk-button--start" data-module="govuk-button" id="start">Start now</a>`)
	_, err := NewButton(byID(t, doc, "start"), nil)
	require.NoError(t, err)

	link := byID(t, doc, "start")
	assert.False(t, link.KeyDown(" ", false))
	assert.Equal(t, []string{"http://localhost/start"}, doc.Navigations())

	assert.True(t, link.KeyDown("Enter", false))
	assert.Len(t, doc.Navigations(), 1)
}

func countSubmits(doc *dom.Document, formID string) *int {
	n := 0
	doc.GetElementByID(formID).AddEventListener("submit", func(*dom.Event) { n++ })
	return &n
}

func TestButtonPreventDoubleClick(t *testing.T) {
	doc := parseDoc(t, `
<form id="form">
  <button type="submit" class="govuk-button" data-module="govuk-button" data-prevent-double-click="true" id="save">Save</button>
</form>`)
	_, err := NewButton(byID(t, doc, "save"), nil)
	require.NoError(t, err)

	submits := countSubmits(doc, "form")
	button := byID(t, doc, "save")

	button.Click()
	button.Click()
	assert.Equal(t, 1, *submits)

	doc.Clock().Advance(time.Second)
	button.Click()
	assert.Equal(t, 2, *submits)
}

func TestButtonAllowsDoubleClickByDefault(t *testing.T) {
	doc := parseDoc(t, `
<form id="form">
  <button type="submit" class="govuk-button" data-module="govuk-button" id="save">Save</button>
</form>`)
	_, err := NewButton(byID(t, doc, "save"), nil)
	require.NoError(t, err)

	submits := countSubmits(doc, "form")
	byID(t, doc, "save").Click()
	byID(t, doc, "save").Click()
	assert.Equal(t, 2, *submits)
}

func TestButtonDatasetOverridesOptions(t *testing.T) {
	doc := parseDoc(t, `
<form id="form">
  <button type="submit" class="govuk-button" data-module="govuk-button" data-prevent-double-click="false" id="save">Save</button>
</form>`)
	button, err := NewButton(byID(t, doc, "save"), frontend.Object{"preventDoubleClick": frontend.Bool(true)})
	require.NoError(t, err)
	assert.False(t, button.Config.Bool("preventDoubleClick"))
}
