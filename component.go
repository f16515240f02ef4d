package frontend

import (
	"github.com/goliatone/go-govuk-frontend/dom"
)

// SupportedClass marks a page whose template ran the support snippet.
const SupportedClass = "govuk-frontend-supported"

// ElementType names the element interface a root must implement.
type ElementType string

const (
	HTMLElement         ElementType = "HTMLElement"
	HTMLAnchorElement   ElementType = "HTMLAnchorElement"
	HTMLButtonElement   ElementType = "HTMLButtonElement"
	HTMLInputElement    ElementType = "HTMLInputElement"
	HTMLTextAreaElement ElementType = "HTMLTextAreaElement"
	HTMLFormElement     ElementType = "HTMLFormElement"
)

var elementTags = map[ElementType]string{
	HTMLAnchorElement:   "a",
	HTMLButtonElement:   "button",
	HTMLInputElement:    "input",
	HTMLTextAreaElement: "textarea",
	HTMLFormElement:     "form",
}

// Matches reports whether el implements the element type.
func (t ElementType) Matches(el *dom.Element) bool {
	if el == nil {
		return false
	}
	tag, ok := elementTags[t]
	if !ok {
		return true
	}
	return el.TagName() == tag
}

// Definition is the static description of a component.
type Definition struct {
	ModuleName string
	// ElementType defaults to HTMLElement.
	ElementType ElementType
	Defaults    Object
	Schema      *Schema
	// ConfigOverride receives the normalised dataset and returns options
	// merged between the caller options and the dataset.
	ConfigOverride func(datasetConfig Object) Object
}

// Configurable reports whether the component takes configuration.
func (d *Definition) Configurable() bool {
	return d != nil && (d.Defaults != nil || d.Schema != nil)
}

func (d *Definition) elementType() ElementType {
	if d.ElementType == "" {
		return HTMLElement
	}
	return d.ElementType
}

func moduleName(def *Definition) string {
	if def == nil {
		return ""
	}
	return def.ModuleName
}

// IsSupported reports whether the page carries the supported class.
func IsSupported(doc *dom.Document) bool {
	if doc == nil || doc.Body() == nil {
		return false
	}
	return doc.Body().HasClass(SupportedClass)
}

// CheckSupport fails with a support error on unsupported pages.
func CheckSupport(doc *dom.Document) error {
	if !IsSupported(doc) {
		return SupportError()
	}
	return nil
}

// ValidateRoot checks that root exists and has the definition's element type.
func ValidateRoot(def *Definition, root *dom.Element) error {
	if def == nil || def.ModuleName == "" {
		return &ComponentError{Kind: ErrInit, Message: "`moduleName` not defined in component"}
	}
	if root == nil {
		return ElementError(def.ModuleName, "Root element (`$root`)")
	}
	if t := def.elementType(); !t.Matches(root) {
		return ElementError(def.ModuleName, "Root element (`$root`)", t)
	}
	return nil
}

func initAttribute(module string) string {
	return "data-" + module + "-init"
}

// IsInitialised reports whether root carries the init marker for module.
func IsInitialised(root *dom.Element, module string) bool {
	return root != nil && root.HasAttribute(initAttribute(module))
}

// CheckInitialised fails with an init error when root was already set up.
func CheckInitialised(def *Definition, root *dom.Element) error {
	if IsInitialised(root, def.ModuleName) {
		return InitError(def.ModuleName)
	}
	return nil
}

// MarkInitialised sets the init marker on root.
func MarkInitialised(def *Definition, root *dom.Element) {
	root.SetAttribute(initAttribute(def.ModuleName), "")
}

// BuildConfig merges defaults, options, the override hook output and the
// normalised dataset of root, in that order of priority.
func BuildConfig(def *Definition, root *dom.Element, options Object) (Object, error) {
	if def.Defaults == nil {
		return nil, ConfigError(def.ModuleName, "Config passed as parameter into constructor but no defaults defined")
	}

	datasetConfig, err := NormaliseDataset(def, root.Dataset())
	if err != nil {
		return nil, err
	}

	var override Object
	if def.ConfigOverride != nil {
		override = def.ConfigOverride(datasetConfig.Clone())
	}

	return MergeConfigs(def.Defaults, options, override, datasetConfig), nil
}

// Base is the state shared by every initialised component.
type Base struct {
	Module   string
	Root     *dom.Element
	Document *dom.Document
	Config   Object
}

// Setup runs the construction checks in order: root element, page support,
// re-initialisation guard, init marker, then configuration and its validation.
func Setup(def *Definition, root *dom.Element, options Object) (Base, error) {
	if err := ValidateRoot(def, root); err != nil {
		return Base{}, err
	}
	doc := root.Document()
	if err := CheckSupport(doc); err != nil {
		return Base{}, err
	}
	if err := CheckInitialised(def, root); err != nil {
		return Base{}, err
	}
	MarkInitialised(def, root)

	base := Base{Module: def.ModuleName, Root: root, Document: doc}
	if !def.Configurable() {
		return base, nil
	}

	config, err := BuildConfig(def, root, options)
	if err != nil {
		return Base{}, err
	}
	if errs := ValidateConfig(def.Schema, config); len(errs) > 0 {
		return Base{}, ConfigError(def.ModuleName, errs[0])
	}
	base.Config = config
	return base, nil
}

// I18n returns a translation engine over the "i18n" config object using the
// locale resolved from the root element. Later options override it.
func (b Base) I18n(opts ...I18nOption) *I18n {
	base := []I18nOption{WithLocale(ResolveLocale(b.Root, ""))}
	if b.Document != nil {
		base = append(base, WithI18nLogger(b.Document.Logger()))
	}
	return NewI18n(b.Config.Object("i18n"), append(base, opts...)...)
}

// ElementError builds an element error attributed to the component.
func (b Base) ElementError(identifier string, expectedType ...ElementType) error {
	return ElementError(b.Module, identifier, expectedType...)
}

// ResolveLocale picks override, then the closest lang attribute on el or its
// ancestors, then the document root lang, then DefaultLocale.
func ResolveLocale(el *dom.Element, override string) string {
	if override = normalizeLocale(override); override != "" {
		return override
	}
	if el != nil {
		if closest := el.Closest("[lang]"); closest != nil {
			if lang := closest.GetAttribute("lang"); lang != "" {
				return lang
			}
		}
		if doc := el.Document(); doc != nil && doc.DocumentElement() != nil {
			if lang := doc.DocumentElement().GetAttribute("lang"); lang != "" {
				return lang
			}
		}
	}
	return DefaultLocale
}

// FocusOptions hooks into SetFocus.
type FocusOptions struct {
	OnBeforeFocus func()
	OnBlur        func()
}

// SetFocus focuses el, making it temporarily focusable with tabindex="-1"
// when it has no tabindex of its own. The attribute is removed on blur.
func SetFocus(el *dom.Element, opts FocusOptions) {
	_, focusable := el.Attr("tabindex")
	if !focusable {
		el.SetAttribute("tabindex", "-1")
	}

	el.AddEventListener("focus", func(*dom.Event) {
		el.AddEventListener("blur", func(*dom.Event) {
			if opts.OnBlur != nil {
				opts.OnBlur()
			}
			if !focusable {
				el.RemoveAttribute("tabindex")
			}
		}, dom.Once())
	}, dom.Once())

	if opts.OnBeforeFocus != nil {
		opts.OnBeforeFocus()
	}
	el.Focus()
}
