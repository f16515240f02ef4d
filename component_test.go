package frontend

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-govuk-frontend/dom"
)

const componentPage = `<!DOCTYPE html>
<html lang="en">
<body class="govuk-template__body govuk-frontend-supported">
  <div id="widget" data-module="govuk-widget" data-remember="false" data-i18n.label="Label from data" data-count=" 4 "></div>
  <div lang="cy"><div id="welsh" data-module="govuk-widget"></div></div>
  <a id="link" href="#target" data-module="govuk-link">Link</a>
  <div id="target">Target</div>
</body>
</html>`

var widgetDefinition = &Definition{
	ModuleName: "govuk-widget",
	Defaults: MustObject(map[string]any{
		"remember": true,
		"count":    1,
		"i18n":     map[string]any{"label": "Default label", "other": "Other"},
	}),
	Schema: &Schema{Properties: map[string]SchemaProperty{
		"remember": {Type: TypeBoolean},
		"count":    {Type: TypeNumber},
		"i18n":     {Type: TypeObject},
	}},
}

func parsePage(t *testing.T, source string) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(source)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	return doc
}

func TestSetupBuildsConfigInPriorityOrder(t *testing.T) {
	doc := parsePage(t, componentPage)
	root := doc.GetElementByID("widget")

	base, err := Setup(widgetDefinition, root, MustObject(map[string]any{
		"remember": true,
		"i18n":     map[string]any{"other": "From options"},
	}))
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	if base.Config.Bool("remember") {
		t.Fatal("dataset should override options")
	}
	if n, _ := base.Config.Number("count"); n != 4 {
		t.Fatalf("count = %v want 4", base.Config.Get("count"))
	}
	i18n := base.Config.Object("i18n")
	if s, _ := i18n.String("label"); s != "Label from data" {
		t.Fatalf("i18n.label = %q", s)
	}
	if s, _ := i18n.String("other"); s != "From options" {
		t.Fatalf("i18n.other = %q", s)
	}
	if !root.HasAttribute("data-govuk-widget-init") {
		t.Fatal("init marker not set")
	}
}

func TestSetupConfigOverrideSitsBetweenOptionsAndDataset(t *testing.T) {
	doc := parsePage(t, componentPage)
	def := *widgetDefinition
	var seen Object
	def.ConfigOverride = func(datasetConfig Object) Object {
		seen = datasetConfig
		return Object{"count": Number(99), "remember": Bool(true)}
	}

	base, err := Setup(&def, doc.GetElementByID("widget"), Object{"count": Number(2)})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if n, _ := seen.Number("count"); n != 4 {
		t.Fatalf("override saw count %v want the dataset value", seen.Get("count"))
	}
	if n, _ := base.Config.Number("count"); n != 4 {
		t.Fatalf("dataset should win over override, got %v", base.Config.Get("count"))
	}
}

func TestSetupErrors(t *testing.T) {
	tests := []struct {
		name  string
		page  string
		def   *Definition
		id    string
		check func(error) bool
		msg   string
	}{
		{
			name:  "unsupported",
			page:  strings.Replace(componentPage, " govuk-frontend-supported", "", 1),
			def:   widgetDefinition,
			id:    "widget",
			check: IsSupportError,
			msg:   supportMessage,
		},
		{
			name:  "missing root",
			page:  componentPage,
			def:   widgetDefinition,
			id:    "nope",
			check: IsElementError,
			msg:   "govuk-widget: Root element (`$root`) not found",
		},
		{
			name:  "wrong root type",
			page:  componentPage,
			def:   &Definition{ModuleName: "govuk-skip-link", ElementType: HTMLAnchorElement},
			id:    "widget",
			check: IsElementError,
			msg:   "govuk-skip-link: Root element (`$root`) is not of type HTMLAnchorElement",
		},
		{
			name:  "no defaults",
			page:  componentPage,
			def:   &Definition{ModuleName: "govuk-widget", Schema: &Schema{}},
			id:    "widget",
			check: IsConfigError,
			msg:   "govuk-widget: Config passed as parameter into constructor but no defaults defined",
		},
		{
			name:  "no schema",
			page:  componentPage,
			def:   &Definition{ModuleName: "govuk-widget", Defaults: Object{}},
			id:    "widget",
			check: IsConfigError,
			msg:   "govuk-widget: Config passed as parameter into constructor but no schema defined",
		},
		{
			name: "anyOf",
			page: componentPage,
			def: &Definition{ModuleName: "govuk-widget", Defaults: Object{}, Schema: &Schema{
				AnyOf: []Condition{{Required: []string{"maxlength"}, ErrorMessage: "need maxlength"}},
			}},
			id:    "widget",
			check: IsConfigError,
			msg:   "govuk-widget: need maxlength",
		},
	}

	for _, tc := range tests {
		doc := parsePage(t, tc.page)
		_, err := Setup(tc.def, doc.GetElementByID(tc.id), nil)
		if !tc.check(err) {
			t.Fatalf("%s: unexpected error kind %v", tc.name, err)
		}
		if err.Error() != tc.msg {
			t.Fatalf("%s: error = %q want %q", tc.name, err.Error(), tc.msg)
		}
	}
}

func TestSetupGuardsReinitialisation(t *testing.T) {
	doc := parsePage(t, componentPage)
	root := doc.GetElementByID("widget")

	if _, err := Setup(widgetDefinition, root, nil); err != nil {
		t.Fatalf("first Setup: %v", err)
	}
	_, err := Setup(widgetDefinition, root, nil)
	if !IsInitError(err) {
		t.Fatalf("expected init error, got %v", err)
	}
	if err.Error() != "govuk-widget: Root element (`$root`) already initialised" {
		t.Fatalf("error = %q", err.Error())
	}

	var ce *ComponentError
	if !errors.As(err, &ce) || ce.Module != "govuk-widget" {
		t.Fatalf("errors.As = %v", ce)
	}
}

func TestSetupWithoutConfiguration(t *testing.T) {
	doc := parsePage(t, componentPage)
	base, err := Setup(&Definition{ModuleName: "govuk-link", ElementType: HTMLAnchorElement}, doc.GetElementByID("link"), nil)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if base.Config != nil {
		t.Fatalf("Config = %v want nil", base.Config)
	}
}

func TestResolveLocale(t *testing.T) {
	doc := parsePage(t, componentPage)

	tests := []struct {
		el       *dom.Element
		override string
		want     string
	}{
		{el: doc.GetElementByID("welsh"), want: "cy"},
		{el: doc.GetElementByID("widget"), want: "en"},
		{el: doc.GetElementByID("welsh"), override: "fr", want: "fr"},
		{el: nil, want: DefaultLocale},
	}
	for _, tc := range tests {
		if got := ResolveLocale(tc.el, tc.override); got != tc.want {
			t.Fatalf("ResolveLocale = %q want %q", got, tc.want)
		}
	}

	bare := parsePage(t, `<div id="x"></div>`)
	if got := ResolveLocale(bare.GetElementByID("x"), ""); got != DefaultLocale {
		t.Fatalf("ResolveLocale without lang = %q", got)
	}
}

func TestBaseI18nUsesRootLocale(t *testing.T) {
	doc := parsePage(t, componentPage)
	base, err := Setup(widgetDefinition, doc.GetElementByID("welsh"), nil)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	engine := base.I18n()
	if engine.Locale() != "cy" {
		t.Fatalf("Locale = %q want cy", engine.Locale())
	}
	if got, _ := engine.T("label", nil); got != "Default label" {
		t.Fatalf("T(label) = %q", got)
	}
}

func TestSetFocus(t *testing.T) {
	doc := parsePage(t, componentPage)
	target := doc.GetElementByID("target")

	var before, blurred bool
	SetFocus(target, FocusOptions{
		OnBeforeFocus: func() { before = true },
		OnBlur:        func() { blurred = true },
	})

	if !before || doc.ActiveElement() != target {
		t.Fatal("target should be focused after the before hook")
	}
	if target.GetAttribute("tabindex") != "-1" {
		t.Fatalf("tabindex = %q want -1", target.GetAttribute("tabindex"))
	}

	target.Blur()
	if !blurred {
		t.Fatal("blur hook not called")
	}
	if target.HasAttribute("tabindex") {
		t.Fatal("temporary tabindex should be removed on blur")
	}

	target.SetAttribute("tabindex", "0")
	SetFocus(target, FocusOptions{})
	target.Blur()
	if target.GetAttribute("tabindex") != "0" {
		t.Fatal("existing tabindex must be kept")
	}
}
