package components

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	frontend "github.com/goliatone/go-govuk-frontend"
	"github.com/goliatone/go-govuk-frontend/dom"
)

// InitConfig configures InitAll. Each component field holds the options
// passed to every instance of that component.
type InitConfig struct {
	Accordion          frontend.Object
	Button             frontend.Object
	CharacterCount     frontend.Object
	ErrorSummary       frontend.Object
	ExitThisPage       frontend.Object
	FileUpload         frontend.Object
	NotificationBanner frontend.Object
	PasswordInput      frontend.Object

	// Scope limits discovery to its descendants. Nil scans the whole document.
	Scope *dom.Element
	// OnError receives construction failures. Nil logs them with the document logger.
	OnError frontend.ErrorHandler
}

// InitConfigFromObject reads the per component options from a decoded config
// object keyed by component name in camel case, for example "characterCount".
// Unknown keys are ignored.
func InitConfigFromObject(obj frontend.Object) InitConfig {
	option := func(key string) frontend.Object {
		if v, ok := obj.Get(key).Obj(); ok {
			return v.Clone()
		}
		return nil
	}
	return InitConfig{
		Accordion:          option("accordion"),
		Button:             option("button"),
		CharacterCount:     option("characterCount"),
		ErrorSummary:       option("errorSummary"),
		ExitThisPage:       option("exitThisPage"),
		FileUpload:         option("fileUpload"),
		NotificationBanner: option("notificationBanner"),
		PasswordInput:      option("passwordInput"),
	}
}

// WithTranslations returns a copy of c whose component i18n options are
// layered over the matching entries of catalog. The catalog is keyed like
// InitConfigFromObject, for example {"accordion": {"showAllSections": "..."}}.
// Options already present in c win over the catalog.
func (c InitConfig) WithTranslations(catalog frontend.Object) InitConfig {
	if len(catalog) == 0 {
		return c
	}
	layer := func(key string, options frontend.Object) frontend.Object {
		messages := catalog.Object(key)
		if len(messages) == 0 {
			return options
		}
		base := frontend.Object{"i18n": frontend.ObjectValue(messages)}
		return frontend.MergeConfigs(base, options)
	}
	out := c
	out.Accordion = layer("accordion", c.Accordion)
	out.CharacterCount = layer("characterCount", c.CharacterCount)
	out.ExitThisPage = layer("exitThisPage", c.ExitThisPage)
	out.FileUpload = layer("fileUpload", c.FileUpload)
	out.PasswordInput = layer("passwordInput", c.PasswordInput)
	return out
}

// ParseInitConfig decodes a YAML or JSON document into an InitConfig.
func ParseInitConfig(data []byte) (InitConfig, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return InitConfig{}, fmt.Errorf("components: decode init config: %w", err)
	}
	obj, err := frontend.ObjectFrom(raw)
	if err != nil {
		return InitConfig{}, fmt.Errorf("components: init config: %w", err)
	}
	return InitConfigFromObject(obj), nil
}

// Instances holds the components created by InitAll.
type Instances struct {
	Accordions          []*Accordion
	Buttons             []*Button
	CharacterCounts     []*CharacterCount
	Checkboxes          []*Checkboxes
	ErrorSummaries      []*ErrorSummary
	ExitThisPages       []*ExitThisPage
	FileUploads         []*FileUpload
	Headers             []*Header
	NotificationBanners []*NotificationBanner
	PasswordInputs      []*PasswordInput
	Radios              []*Radios
	ServiceNavigations  []*ServiceNavigation
	SkipLinks           []*SkipLink
	Tabs                []*Tabs
}

// Len returns the total number of created components.
func (i Instances) Len() int {
	return len(i.Accordions) + len(i.Buttons) + len(i.CharacterCounts) +
		len(i.Checkboxes) + len(i.ErrorSummaries) + len(i.ExitThisPages) +
		len(i.FileUploads) + len(i.Headers) + len(i.NotificationBanners) +
		len(i.PasswordInputs) + len(i.Radios) + len(i.ServiceNavigations) +
		len(i.SkipLinks) + len(i.Tabs)
}

// InitAll creates every component found in doc. An unsupported page is
// reported once and nothing is created. A failing element never stops the
// others.
func InitAll(doc *dom.Document, cfg InitConfig) Instances {
	if err := frontend.CheckSupport(doc); err != nil {
		if cfg.OnError != nil {
			cfg.OnError(err, frontend.ErrorContext{})
		} else {
			doc.Logger().Warn("components not initialised", zap.Error(err))
		}
		return Instances{}
	}

	opts := []frontend.CreateOption{
		frontend.WithScope(cfg.Scope),
		frontend.WithErrorHandler(cfg.OnError),
	}

	return Instances{
		Accordions:          frontend.CreateAll(doc, AccordionConstructor, cfg.Accordion, opts...),
		Buttons:             frontend.CreateAll(doc, ButtonConstructor, cfg.Button, opts...),
		CharacterCounts:     frontend.CreateAll(doc, CharacterCountConstructor, cfg.CharacterCount, opts...),
		Checkboxes:          frontend.CreateAll(doc, CheckboxesConstructor, nil, opts...),
		ErrorSummaries:      frontend.CreateAll(doc, ErrorSummaryConstructor, cfg.ErrorSummary, opts...),
		ExitThisPages:       frontend.CreateAll(doc, ExitThisPageConstructor, cfg.ExitThisPage, opts...),
		FileUploads:         frontend.CreateAll(doc, FileUploadConstructor, cfg.FileUpload, opts...),
		Headers:             frontend.CreateAll(doc, HeaderConstructor, nil, opts...),
		NotificationBanners: frontend.CreateAll(doc, NotificationBannerConstructor, cfg.NotificationBanner, opts...),
		PasswordInputs:      frontend.CreateAll(doc, PasswordInputConstructor, cfg.PasswordInput, opts...),
		Radios:              frontend.CreateAll(doc, RadiosConstructor, nil, opts...),
		ServiceNavigations:  frontend.CreateAll(doc, ServiceNavigationConstructor, nil, opts...),
		SkipLinks:           frontend.CreateAll(doc, SkipLinkConstructor, nil, opts...),
		Tabs:                frontend.CreateAll(doc, TabsConstructor, nil, opts...),
	}
}
