package components

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	frontend "github.com/goliatone/go-govuk-frontend"
	"github.com/goliatone/go-govuk-frontend/dom"
)

const characterCountMarkup = `
<div class="govuk-form-group govuk-character-count" data-module="govuk-character-count" id="cc" %s>
  <textarea class="govuk-textarea govuk-js-character-count" id="more-detail" name="moreDetail" rows="5" maxlength="10"></textarea>
  <div id="more-detail-info" class="govuk-hint govuk-character-count__message">%s</div>
</div>`

func characterCountDoc(t *testing.T, attrs, description string) (*dom.Document, *dom.Element) {
	t.Helper()
	doc := parseDoc(t, fmt.Sprintf(characterCountMarkup, attrs, description))
	return doc, byID(t, doc, "cc")
}

func TestCharacterCountMessages(t *testing.T) {
	doc, root := characterCountDoc(t, `data-maxlength="10"`, "You can enter up to 10 characters")
	cc, err := NewCharacterCount(root, nil)
	require.NoError(t, err)

	textarea := byID(t, doc, "more-detail")
	visible := doc.QuerySelector(".govuk-character-count__status")
	sr := doc.QuerySelector(".govuk-character-count__sr-status")
	require.NotNil(t, visible)
	require.NotNil(t, sr)

	assert.False(t, textarea.HasAttribute("maxlength"))
	assert.True(t, byID(t, doc, "more-detail-info").HasClass("govuk-visually-hidden"))
	assert.Equal(t, "true", visible.GetAttribute("aria-hidden"))
	assert.Equal(t, "You have 10 characters remaining", visible.TextContent())
	assert.Equal(t, "You have 10 characters remaining", sr.TextContent())

	tests := []struct {
		value string
		want  string
		error bool
	}{
		{value: "Hello", want: "You have 5 characters remaining"},
		{value: "123456789", want: "You have 1 character remaining"},
		{value: "1234567890", want: "You have 0 characters remaining"},
		{value: "12345678901", want: "You have 1 character too many", error: true},
		{value: "Hello, world!", want: "You have 3 characters too many", error: true},
	}
	for _, tc := range tests {
		textarea.Input(tc.value)
		assert.Equal(t, tc.want, visible.TextContent(), tc.value)
		assert.Equal(t, tc.want, cc.CountMessage(), tc.value)
		assert.Equal(t, tc.error, textarea.HasClass("govuk-textarea--error"), tc.value)
		assert.Equal(t, tc.error, visible.HasClass("govuk-error-message"), tc.value)
		assert.Equal(t, !tc.error, visible.HasClass("govuk-hint"), tc.value)
	}
}

func TestCharacterCountWords(t *testing.T) {
	doc, root := characterCountDoc(t, `data-maxwords="3"`, "Up to 3 words")
	cc, err := NewCharacterCount(root, nil)
	require.NoError(t, err)

	textarea := byID(t, doc, "more-detail")
	assert.Equal(t, "You have 3 words remaining", cc.CountMessage())

	textarea.Input("  one\ttwo ")
	assert.Equal(t, "You have 1 word remaining", cc.CountMessage())

	textarea.Input("one two three four")
	assert.Equal(t, "You have 1 word too many", cc.CountMessage())
}

func TestCharacterCountMaxWordsWinsOverMaxLength(t *testing.T) {
	_, root := characterCountDoc(t, `data-maxlength="10" data-maxwords="2"`, "Limit")
	cc, err := NewCharacterCount(root, nil)
	require.NoError(t, err)
	assert.Equal(t, "You have 2 words remaining", cc.CountMessage())
}

func TestCharacterCountDatasetLimitClearsOptions(t *testing.T) {
	_, root := characterCountDoc(t, `data-maxlength="10"`, "Limit")
	cc, err := NewCharacterCount(root, frontend.Object{"maxwords": frontend.Number(5)})
	require.NoError(t, err)
	assert.Equal(t, "You have 10 characters remaining", cc.CountMessage())

	_, root = characterCountDoc(t, "", "Limit")
	cc, err = NewCharacterCount(root, frontend.Object{"maxwords": frontend.Number(5)})
	require.NoError(t, err)
	assert.Equal(t, "You have 5 words remaining", cc.CountMessage())
}

func TestCharacterCountRequiresLimit(t *testing.T) {
	_, root := characterCountDoc(t, "", "Limit")
	_, err := NewCharacterCount(root, nil)
	require.True(t, frontend.IsConfigError(err))
	assert.EqualError(t, err, `govuk-character-count: Either "maxlength" or "maxwords" must be provided`)
}

func TestCharacterCountThreshold(t *testing.T) {
	doc, root := characterCountDoc(t, `data-maxlength="10" data-threshold="75"`, "Limit")
	_, err := NewCharacterCount(root, nil)
	require.NoError(t, err)

	textarea := byID(t, doc, "more-detail")
	visible := doc.QuerySelector(".govuk-character-count__status")
	sr := doc.QuerySelector(".govuk-character-count__sr-status")

	assert.True(t, visible.HasClass("govuk-character-count__message--disabled"))
	assert.Equal(t, "true", sr.GetAttribute("aria-hidden"))

	textarea.Input("12345678")
	assert.False(t, visible.HasClass("govuk-character-count__message--disabled"))

	doc.DispatchWindowEvent("pageshow")
	assert.False(t, sr.HasAttribute("aria-hidden"))
	assert.Equal(t, "You have 2 characters remaining", sr.TextContent())
}

func TestCharacterCountDescriptionFromTranslations(t *testing.T) {
	doc, root := characterCountDoc(t,
		`data-maxlength="10" data-i18n.textarea-description.other="You can enter up to %{count} characters"`, "")
	_, err := NewCharacterCount(root, nil)
	require.NoError(t, err)

	assert.Equal(t, "You can enter up to 10 characters", byID(t, doc, "more-detail-info").TextContent())
}

func TestCharacterCountPollsWhileFocused(t *testing.T) {
	doc, root := characterCountDoc(t, `data-maxlength="10"`, "Limit")
	_, err := NewCharacterCount(root, nil)
	require.NoError(t, err)

	textarea := byID(t, doc, "more-detail")
	sr := doc.QuerySelector(".govuk-character-count__sr-status")

	textarea.Focus()
	textarea.SetValue("abc")
	doc.Clock().Advance(time.Second)
	assert.Equal(t, "You have 7 characters remaining", sr.TextContent())

	textarea.Blur()
	assert.Zero(t, doc.Clock().Pending())
}

func TestCharacterCountFieldErrors(t *testing.T) {
	doc := parseDoc(t, `
<div data-module="govuk-character-count" data-maxlength="10" id="no-field"></div>
<div data-module="govuk-character-count" data-maxlength="10" id="wrong-field"><div class="govuk-js-character-count"></div></div>
<div data-module="govuk-character-count" data-maxlength="10" id="no-info"><textarea class="govuk-js-character-count" id="lonely"></textarea></div>`)

	tests := map[string]string{
		"no-field":    "govuk-character-count: Form field (`.govuk-js-character-count`) not found",
		"wrong-field": "govuk-character-count: Form field (`.govuk-js-character-count`) is not of type HTMLTextareaElement or HTMLInputElement",
		"no-info":     "govuk-character-count: Count message (`id=\"lonely-info\"`) not found",
	}
	for id, want := range tests {
		_, err := NewCharacterCount(byID(t, doc, id), nil)
		assert.True(t, frontend.IsElementError(err), id)
		assert.EqualError(t, err, want, id)
	}
}
