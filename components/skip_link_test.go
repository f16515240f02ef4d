package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	frontend "github.com/goliatone/go-govuk-frontend"
)

const skipLinkTarget = `<main class="govuk-main-wrapper" id="main-content">Content</main>`

func TestSkipLinkFocusesTarget(t *testing.T) {
	doc := parseDoc(t, `<a href="#main-content" class="govuk-skip-link" data-module="govuk-skip-link" id="skip">Skip to main content</a>`+skipLinkTarget)
	link, err := NewSkipLink(byID(t, doc, "skip"))
	require.NoError(t, err)

	main := byID(t, doc, "main-content")
	assert.Same(t, main, link.Target())

	byID(t, doc, "skip").Click()
	assert.Same(t, main, doc.ActiveElement())
	assert.True(t, main.HasClass("govuk-skip-link-focused-element"))
	assert.Equal(t, "-1", main.GetAttribute("tabindex"))
	assert.Equal(t, "#main-content", doc.Hash())

	main.Blur()
	assert.False(t, main.HasClass("govuk-skip-link-focused-element"))
	assert.False(t, main.HasAttribute("tabindex"))
}

func TestSkipLinkToAnotherPage(t *testing.T) {
	doc := parseDoc(t, `<a href="/other-page#main-content" class="govuk-skip-link" data-module="govuk-skip-link" id="skip">Skip</a>`)
	link, err := NewSkipLink(byID(t, doc, "skip"))
	require.NoError(t, err)
	assert.Nil(t, link.Target())
}

func TestSkipLinkErrors(t *testing.T) {
	doc := parseDoc(t, `
<span data-module="govuk-skip-link" id="not-link">Skip</span>
<a href="/" data-module="govuk-skip-link" id="no-hash">Skip</a>
<a href="#nowhere" data-module="govuk-skip-link" id="no-target">Skip</a>`)

	tests := map[string]string{
		"not-link":  "govuk-skip-link: Root element (`$root`) is not of type HTMLAnchorElement",
		"no-hash":   "govuk-skip-link: Target link (`href=\"/\"`) has no hash fragment",
		"no-target": "govuk-skip-link: Target content (`id=\"nowhere\"`) not found",
	}
	for id, want := range tests {
		_, err := NewSkipLink(byID(t, doc, id))
		assert.True(t, frontend.IsElementError(err), id)
		assert.EqualError(t, err, want, id)
	}
}
