package components

import (
	"math"
	"strings"
	"time"

	frontend "github.com/goliatone/go-govuk-frontend"
	"github.com/goliatone/go-govuk-frontend/dom"
)

const (
	characterCountPollInterval = time.Second
	characterCountIdleDelay    = 500 * time.Millisecond
)

const maxLengthMessage = `Either "maxlength" or "maxwords" must be provided`

// CharacterCountDefinition describes govuk-character-count.
var CharacterCountDefinition = &frontend.Definition{
	ModuleName: "govuk-character-count",
	Defaults: frontend.MustObject(map[string]any{
		"threshold": 0,
		"i18n": map[string]any{
			"charactersUnderLimit": map[string]any{
				"one":   "You have %{count} character remaining",
				"other": "You have %{count} characters remaining",
			},
			"charactersAtLimit": "You have 0 characters remaining",
			"charactersOverLimit": map[string]any{
				"one":   "You have %{count} character too many",
				"other": "You have %{count} characters too many",
			},
			"wordsUnderLimit": map[string]any{
				"one":   "You have %{count} word remaining",
				"other": "You have %{count} words remaining",
			},
			"wordsAtLimit": "You have 0 words remaining",
			"wordsOverLimit": map[string]any{
				"one":   "You have %{count} word too many",
				"other": "You have %{count} words too many",
			},
			"textareaDescription": map[string]any{
				"other": "",
			},
		},
	}),
	Schema: &frontend.Schema{
		Properties: map[string]frontend.SchemaProperty{
			"i18n":      {Type: frontend.TypeObject},
			"maxwords":  {Type: frontend.TypeNumber},
			"maxlength": {Type: frontend.TypeNumber},
			"threshold": {Type: frontend.TypeNumber},
		},
		AnyOf: []frontend.Condition{
			{Required: []string{"maxwords"}, ErrorMessage: maxLengthMessage},
			{Required: []string{"maxlength"}, ErrorMessage: maxLengthMessage},
		},
	},
	ConfigOverride: characterCountOverride,
}

// characterCountOverride drops maxlength and maxwords from the caller options
// when the markup sets either, so the data attributes decide the limit.
func characterCountOverride(datasetConfig frontend.Object) frontend.Object {
	if datasetConfig.Has("maxwords") || datasetConfig.Has("maxlength") {
		return frontend.Object{
			"maxlength": frontend.Undefined(),
			"maxwords":  frontend.Undefined(),
		}
	}
	return frontend.Object{}
}

// CharacterCountConstructor creates character counts with frontend.CreateAll.
var CharacterCountConstructor = frontend.Constructor[*CharacterCount]{
	Definition: CharacterCountDefinition,
	New:        NewCharacterCount,
}

// CharacterCount tells users how many characters or words they have left.
// When both maxwords and maxlength are configured the word limit applies.
type CharacterCount struct {
	frontend.Base

	i18n      *frontend.I18n
	textarea  *dom.Element
	visible   *dom.Element
	sr        *dom.Element
	maxLength float64

	lastInputAt    time.Time
	lastInputValue string
	valueChecker   int
}

// NewCharacterCount binds a character count to root.
func NewCharacterCount(root *dom.Element, options frontend.Object) (*CharacterCount, error) {
	base, err := frontend.Setup(CharacterCountDefinition, root, options)
	if err != nil {
		return nil, err
	}

	const fieldID = "Form field (`.govuk-js-character-count`)"
	textarea := root.QuerySelector(".govuk-js-character-count")
	if textarea == nil {
		return nil, base.ElementError(fieldID)
	}
	if !frontend.HTMLTextAreaElement.Matches(textarea) && !frontend.HTMLInputElement.Matches(textarea) {
		return nil, base.ElementError(fieldID, "HTMLTextareaElement or HTMLInputElement")
	}

	c := &CharacterCount{
		Base:      base,
		i18n:      base.I18n(),
		textarea:  textarea,
		maxLength: math.Inf(1),
	}
	if n, ok := base.Config.Number("maxwords"); ok {
		c.maxLength = n
	} else if n, ok := base.Config.Number("maxlength"); ok {
		c.maxLength = n
	}

	description := c.Document.GetElementByID(textarea.ID() + "-info")
	if description == nil {
		return nil, base.ElementError("Count message (`id=\"" + textarea.ID() + "-info\"`)")
	}
	if strings.TrimSpace(description.TextContent()) == "" {
		description.SetTextContent(c.i18n.MustT("textareaDescription", frontend.Data{"count": c.maxLength}))
	}
	textarea.After(description)

	c.sr = createElement(c.Document, "div", "govuk-character-count__sr-status", visuallyHiddenClass)
	c.sr.SetAttribute("aria-live", "polite")
	description.After(c.sr)

	c.visible = createElement(c.Document, "div", description.ClassList()...)
	c.visible.AddClass("govuk-character-count__status")
	c.visible.SetAttribute("aria-hidden", "true")
	description.After(c.visible)

	description.AddClass(visuallyHiddenClass)
	textarea.RemoveAttribute("maxlength")

	c.bindChangeEvents()
	c.Document.AddWindowListener("pageshow", func(*dom.Event) {
		c.updateCountMessage()
	})
	c.updateCountMessage()
	return c, nil
}

func (c *CharacterCount) bindChangeEvents() {
	c.textarea.AddEventListener("keyup", func(*dom.Event) {
		c.updateVisibleCountMessage()
		c.lastInputAt = c.Document.Clock().Now()
	})
	c.textarea.AddEventListener("focus", func(*dom.Event) {
		c.handleFocus()
	})
	c.textarea.AddEventListener("blur", func(*dom.Event) {
		c.Document.Clock().Clear(c.valueChecker)
		c.valueChecker = 0
	})
}

// handleFocus polls for value changes that do not fire keyup, such as
// dictation or autofill, once the user has stopped typing.
func (c *CharacterCount) handleFocus() {
	clock := c.Document.Clock()
	clock.Clear(c.valueChecker)
	c.valueChecker = clock.SetInterval(characterCountPollInterval, func() {
		if c.lastInputAt.IsZero() || !clock.Now().Add(-characterCountIdleDelay).Before(c.lastInputAt) {
			c.updateIfValueChanged()
		}
	})
}

func (c *CharacterCount) updateIfValueChanged() {
	if value := c.textarea.Value(); value != c.lastInputValue {
		c.lastInputValue = value
		c.updateCountMessage()
	}
}

func (c *CharacterCount) updateCountMessage() {
	c.updateVisibleCountMessage()
	c.updateScreenReaderCountMessage()
}

func (c *CharacterCount) updateVisibleCountMessage() {
	remaining := c.maxLength - float64(c.count(c.textarea.Value()))
	isError := remaining < 0

	c.visible.ToggleClass("govuk-character-count__message--disabled", !c.isOverThreshold())
	c.textarea.ToggleClass("govuk-textarea--error", isError)
	c.visible.ToggleClass("govuk-error-message", isError)
	c.visible.ToggleClass("govuk-hint", !isError)
	c.visible.SetTextContent(c.CountMessage())
}

func (c *CharacterCount) updateScreenReaderCountMessage() {
	if c.isOverThreshold() {
		c.sr.RemoveAttribute("aria-hidden")
	} else {
		c.sr.SetAttribute("aria-hidden", "true")
	}
	c.sr.SetTextContent(c.CountMessage())
}

func (c *CharacterCount) countsWords() bool {
	return c.Config.Get("maxwords").Truthy()
}

// count measures text in words or UTF-16 code units.
func (c *CharacterCount) count(text string) int {
	if c.countsWords() {
		return len(strings.Fields(text))
	}
	return dom.TextLength(text)
}

// CountMessage returns the message for the current field value.
func (c *CharacterCount) CountMessage() string {
	remaining := c.maxLength - float64(c.count(c.textarea.Value()))
	countType := "characters"
	if c.countsWords() {
		countType = "words"
	}
	return c.formatCountMessage(remaining, countType)
}

func (c *CharacterCount) formatCountMessage(remaining float64, countType string) string {
	if remaining == 0 {
		return c.i18n.MustT(countType+"AtLimit", nil)
	}
	suffix := "UnderLimit"
	if remaining < 0 {
		suffix = "OverLimit"
	}
	return c.i18n.MustT(countType+suffix, frontend.Data{"count": math.Abs(remaining)})
}

// isOverThreshold reports whether the count has reached threshold percent of
// the limit. Without a threshold the message is always shown.
func (c *CharacterCount) isOverThreshold() bool {
	threshold, _ := c.Config.Number("threshold")
	if !c.Config.Get("threshold").Truthy() {
		return true
	}
	current := float64(c.count(c.textarea.Value()))
	return c.maxLength*threshold/100 <= current
}
