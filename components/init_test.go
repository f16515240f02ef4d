package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	frontend "github.com/goliatone/go-govuk-frontend"
	"github.com/goliatone/go-govuk-frontend/dom"
)

const initMarkup = `
<a href="#main-content" class="govuk-skip-link" data-module="govuk-skip-link">Skip to main content</a>
<header class="govuk-header" data-module="govuk-header"></header>
<main id="main-content">
  <div id="first">
    <button type="submit" class="govuk-button" data-module="govuk-button">Save</button>
    <div class="govuk-notification-banner" role="region" data-module="govuk-notification-banner"></div>
    <div class="govuk-tabs" data-module="govuk-tabs" id="broken-tabs"></div>
  </div>
  <div id="second">
    <div class="govuk-form-group govuk-character-count" data-module="govuk-character-count" data-maxlength="20">
      <textarea class="govuk-textarea govuk-js-character-count" id="detail"></textarea>
      <div id="detail-info" class="govuk-hint govuk-character-count__message">Up to 20 characters</div>
    </div>
    <div class="govuk-radios" data-module="govuk-radios">
      <input class="govuk-radios__input" id="yes" name="answer" type="radio" value="yes">
    </div>
  </div>
</main>`

func TestInitAllCreatesEveryComponent(t *testing.T) {
	doc := parseDoc(t, initMarkup)

	var failures []frontend.ErrorContext
	instances := InitAll(doc, InitConfig{
		OnError: func(err error, ctx frontend.ErrorContext) {
			assert.True(t, frontend.IsElementError(err))
			failures = append(failures, ctx)
		},
	})

	assert.Len(t, instances.SkipLinks, 1)
	assert.Len(t, instances.Headers, 1)
	assert.Len(t, instances.Buttons, 1)
	assert.Len(t, instances.NotificationBanners, 1)
	assert.Len(t, instances.CharacterCounts, 1)
	assert.Len(t, instances.Radios, 1)
	assert.Empty(t, instances.Tabs)
	assert.Equal(t, 6, instances.Len())

	require.Len(t, failures, 1)
	assert.Equal(t, "govuk-tabs", failures[0].Component)
	assert.Same(t, byID(t, doc, "broken-tabs"), failures[0].Element)
}

func TestInitAllScope(t *testing.T) {
	doc := parseDoc(t, initMarkup)

	instances := InitAll(doc, InitConfig{
		Scope:   byID(t, doc, "second"),
		OnError: func(err error, _ frontend.ErrorContext) { t.Errorf("unexpected error: %v", err) },
	})

	assert.Len(t, instances.CharacterCounts, 1)
	assert.Len(t, instances.Radios, 1)
	assert.Equal(t, 2, instances.Len())
	assert.False(t, byID(t, doc, "broken-tabs").HasAttribute("data-govuk-tabs-init"))
}

func TestInitAllPassesOptions(t *testing.T) {
	doc := parseDoc(t, initMarkup)

	instances := InitAll(doc, InitConfig{
		Button: frontend.Object{"preventDoubleClick": frontend.Bool(true)},
		CharacterCount: frontend.Object{
			"i18n": frontend.ObjectValue(frontend.Object{
				"charactersUnderLimit": frontend.ObjectValue(frontend.Object{
					"other": frontend.String("%{count} left"),
				}),
			}),
		},
		OnError: func(error, frontend.ErrorContext) {},
	})

	require.Len(t, instances.Buttons, 1)
	assert.True(t, instances.Buttons[0].Config.Bool("preventDoubleClick"))
	require.Len(t, instances.CharacterCounts, 1)
	assert.Equal(t, "20 left", instances.CharacterCounts[0].CountMessage())
}

func TestInitAllUnsupportedPage(t *testing.T) {
	doc, err := dom.ParseString(`<html><body>` + initMarkup + `</body></html>`)
	require.NoError(t, err)

	var calls []frontend.ErrorContext
	instances := InitAll(doc, InitConfig{
		OnError: func(err error, ctx frontend.ErrorContext) {
			assert.True(t, frontend.IsSupportError(err))
			calls = append(calls, ctx)
		},
	})

	assert.Zero(t, instances.Len())
	require.Len(t, calls, 1)
	assert.Nil(t, calls[0].Element)
}

func TestInitAllLogsWithoutHandler(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	doc := parseDoc(t, initMarkup, dom.WithLogger(zap.New(core)))

	InitAll(doc, InitConfig{})

	entries := logs.FilterMessage("component initialisation failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "govuk-tabs", entries[0].ContextMap()["component"])
}

func TestInitAllTwiceReportsInitErrors(t *testing.T) {
	doc := parseDoc(t, initMarkup)
	InitAll(doc, InitConfig{OnError: func(error, frontend.ErrorContext) {}})

	var initErrors int
	second := InitAll(doc, InitConfig{
		OnError: func(err error, _ frontend.ErrorContext) {
			if frontend.IsInitError(err) {
				initErrors++
			}
		},
	})
	assert.Zero(t, second.Len())
	assert.Equal(t, 7, initErrors)
}

func TestParseInitConfig(t *testing.T) {
	cfg, err := ParseInitConfig([]byte(`
button:
  preventDoubleClick: true
characterCount:
  threshold: 50
  i18n:
    charactersAtLimit: "Dim nodau ar ôl"
exitThisPage:
  i18n:
    activated: Llwytho.
unknown:
  ignored: true
`))
	require.NoError(t, err)

	assert.True(t, cfg.Button.Bool("preventDoubleClick"))
	threshold, ok := cfg.CharacterCount.Number("threshold")
	assert.True(t, ok)
	assert.Equal(t, 50.0, threshold)
	atLimit, ok := cfg.CharacterCount.Object("i18n").String("charactersAtLimit")
	assert.True(t, ok)
	assert.Equal(t, "Dim nodau ar ôl", atLimit)
	assert.Nil(t, cfg.Accordion)
	assert.NotNil(t, cfg.ExitThisPage)

	_, err = ParseInitConfig([]byte("button: [unclosed"))
	assert.Error(t, err)
}

func TestInitConfigWithTranslations(t *testing.T) {
	catalog := frontend.MustObject(map[string]any{
		"accordion": map[string]any{
			"showAllSections": "Dangos pob adran",
			"hideAllSections": "Cuddio pob adran",
		},
		"passwordInput": map[string]any{"showPassword": "Dangos"},
	})

	cfg := InitConfig{
		Accordion: frontend.Object{
			"i18n": frontend.ObjectValue(frontend.Object{"hideAllSections": frontend.String("Cau")}),
		},
	}.WithTranslations(catalog)

	i18n := cfg.Accordion.Object("i18n")
	show, _ := i18n.String("showAllSections")
	hide, _ := i18n.String("hideAllSections")
	assert.Equal(t, "Dangos pob adran", show)
	assert.Equal(t, "Cau", hide)

	label, _ := cfg.PasswordInput.Object("i18n").String("showPassword")
	assert.Equal(t, "Dangos", label)
	assert.Nil(t, cfg.CharacterCount)

	doc := parseDoc(t, `
<div class="govuk-accordion" data-module="govuk-accordion" id="acc">
  <div class="govuk-accordion__section">
    <div class="govuk-accordion__section-header">
      <h2 class="govuk-accordion__section-heading"><span class="govuk-accordion__section-button" id="acc-heading-1">A</span></h2>
    </div>
    <div id="acc-content-1" class="govuk-accordion__section-content"></div>
  </div>
</div>`)
	instances := InitAll(doc, cfg)
	require.Len(t, instances.Accordions, 1)
	assert.Equal(t, "Dangos pob adran", doc.QuerySelector(".govuk-accordion__show-all-text").TextContent())
}
