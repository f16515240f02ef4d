package components

import (
	"fmt"
	"strings"

	frontend "github.com/goliatone/go-govuk-frontend"
	"github.com/goliatone/go-govuk-frontend/dom"
)

const (
	accordionSectionClass         = "govuk-accordion__section"
	accordionSectionExpandedClass = "govuk-accordion__section--expanded"
	accordionSectionHeaderClass   = "govuk-accordion__section-header"
	accordionSectionHeadingClass  = "govuk-accordion__section-heading"
	accordionSectionButtonClass   = "govuk-accordion__section-button"
	accordionSectionContentClass  = "govuk-accordion__section-content"
	accordionSectionSummaryClass  = "govuk-accordion__section-summary"
	accordionHeadingTextClass     = "govuk-accordion__section-heading-text"
	accordionChevronClass         = "govuk-accordion-nav__chevron"
	accordionChevronDownClass     = "govuk-accordion-nav__chevron--down"
)

// AccordionDefinition describes govuk-accordion.
var AccordionDefinition = &frontend.Definition{
	ModuleName: "govuk-accordion",
	Defaults: frontend.MustObject(map[string]any{
		"i18n": map[string]any{
			"hideAllSections":      "Hide all sections",
			"hideSection":          "Hide",
			"hideSectionAriaLabel": "Hide this section",
			"showAllSections":      "Show all sections",
			"showSection":          "Show",
			"showSectionAriaLabel": "Show this section",
		},
		"rememberExpanded": true,
	}),
	Schema: &frontend.Schema{
		Properties: map[string]frontend.SchemaProperty{
			"i18n":             {Type: frontend.TypeObject},
			"rememberExpanded": {Type: frontend.TypeBoolean},
		},
	},
}

// AccordionConstructor creates accordions with frontend.CreateAll.
var AccordionConstructor = frontend.Constructor[*Accordion]{
	Definition: AccordionDefinition,
	New:        NewAccordion,
}

// Accordion shows and hides sections of related content. Section state is
// remembered in session storage under each content id when rememberExpanded
// is set.
type Accordion struct {
	frontend.Base

	i18n     *frontend.I18n
	sections []*accordionSection

	showAllButton *dom.Element
	showAllIcon   *dom.Element
	showAllText   *dom.Element
}

type accordionSection struct {
	root       *dom.Element
	button     *dom.Element
	content    *dom.Element
	icon       *dom.Element
	toggleText *dom.Element
}

// NewAccordion binds an accordion to root.
func NewAccordion(root *dom.Element, options frontend.Object) (*Accordion, error) {
	base, err := frontend.Setup(AccordionDefinition, root, options)
	if err != nil {
		return nil, err
	}

	sections := root.QuerySelectorAll("." + accordionSectionClass)
	if len(sections) == 0 {
		return nil, base.ElementError("Sections (`<div class=\"govuk-accordion__section\">`)")
	}

	a := &Accordion{Base: base, i18n: base.I18n()}
	a.initControls()
	if err := a.initSectionHeaders(sections); err != nil {
		return nil, err
	}
	a.updateShowAllButton(a.areAllSectionsOpen())
	return a, nil
}

func (a *Accordion) initControls() {
	doc := a.Document

	a.showAllButton = createElement(doc, "button", "govuk-accordion__show-all")
	a.showAllButton.SetAttribute("type", "button")
	a.showAllButton.SetAttribute("aria-expanded", "false")

	a.showAllIcon = createElement(doc, "span", accordionChevronClass)
	a.showAllText = createElement(doc, "span", "govuk-accordion__show-all-text")
	a.showAllButton.AppendChild(a.showAllIcon)
	a.showAllButton.AppendChild(a.showAllText)

	controls := createElement(doc, "div", "govuk-accordion__controls")
	controls.AppendChild(a.showAllButton)
	a.Root.Prepend(controls)

	a.showAllButton.AddEventListener("click", func(*dom.Event) {
		a.onShowOrHideAllToggle()
	})
}

func (a *Accordion) initSectionHeaders(sections []*dom.Element) error {
	for i, el := range sections {
		header := el.QuerySelector("." + accordionSectionHeaderClass)
		if header == nil {
			return a.ElementError("Section headers (`<div class=\"govuk-accordion__section-header\">`)")
		}
		content := el.QuerySelector("." + accordionSectionContentClass)
		if content == nil {
			return a.ElementError("Section content (`<div class=\"govuk-accordion__section-content\">`)")
		}

		section, err := a.constructHeaderMarkup(header, i)
		if err != nil {
			return err
		}
		section.root = el
		section.content = content
		a.sections = append(a.sections, section)

		a.setExpanded(a.isExpanded(section), section)
		header.AddEventListener("click", func(*dom.Event) {
			a.onSectionToggle(section)
		})
		content.AddEventListener("beforematch", func(*dom.Event) {
			a.setExpanded(true, section)
			a.storeState(section, true)
		})
		a.setInitialState(section)
	}
	return nil
}

// constructHeaderMarkup replaces the server rendered button placeholder with
// a real button holding the heading, summary and show/hide toggle.
func (a *Accordion) constructHeaderMarkup(header *dom.Element, index int) (*accordionSection, error) {
	doc := a.Document

	span := header.QuerySelector("." + accordionSectionButtonClass)
	heading := header.QuerySelector("." + accordionSectionHeadingClass)
	summary := header.QuerySelector("." + accordionSectionSummaryClass)

	if heading == nil {
		return nil, a.ElementError("Section heading (`.govuk-accordion__section-heading`)")
	}
	if span == nil {
		return nil, a.ElementError("Section button placeholder (`<span class=\"govuk-accordion__section-button\">`)")
	}

	button := doc.CreateElement("button")
	button.SetAttribute("type", "button")
	button.SetAttribute("aria-controls", fmt.Sprintf("%s-content-%d", a.Root.ID(), index+1))
	for _, attr := range span.Attributes() {
		if attr.Key != "id" {
			button.SetAttribute(attr.Key, attr.Val)
		}
	}

	headingText := createElement(doc, "span", accordionHeadingTextClass)
	if id := span.ID(); id != "" {
		headingText.SetID(id)
	}
	headingTextFocus := createElement(doc, "span", "govuk-accordion__section-heading-text-focus")
	span.MoveChildrenTo(headingTextFocus)
	headingText.AppendChild(headingTextFocus)

	toggle := createElement(doc, "span", "govuk-accordion__section-toggle")
	toggle.SetAttribute("data-nosnippet", "")
	toggleFocus := createElement(doc, "span", "govuk-accordion__section-toggle-focus")
	icon := createElement(doc, "span", accordionChevronClass)
	toggleText := createElement(doc, "span", "govuk-accordion__section-toggle-text")
	toggleFocus.AppendChild(icon)
	toggleFocus.AppendChild(toggleText)
	toggle.AppendChild(toggleFocus)

	button.AppendChild(headingText)
	button.AppendChild(a.punctuation())

	if summary != nil {
		summarySpan := doc.CreateElement("span")
		for _, attr := range summary.Attributes() {
			summarySpan.SetAttribute(attr.Key, attr.Val)
		}
		summaryFocus := createElement(doc, "span", "govuk-accordion__section-summary-focus")
		summary.MoveChildrenTo(summaryFocus)
		summarySpan.AppendChild(summaryFocus)
		summary.Remove()

		button.AppendChild(summarySpan)
		button.AppendChild(a.punctuation())
	}

	button.AppendChild(toggle)
	span.Remove()
	heading.AppendChild(button)

	return &accordionSection{button: button, icon: icon, toggleText: toggleText}, nil
}

func (a *Accordion) punctuation() *dom.Element {
	return createSpan(a.Document, ", ", visuallyHiddenClass, "govuk-accordion__section-heading-divider")
}

func (a *Accordion) onSectionToggle(section *accordionSection) {
	expanded := !a.isExpanded(section)
	a.setExpanded(expanded, section)
	a.storeState(section, expanded)
}

func (a *Accordion) onShowOrHideAllToggle() {
	expanded := !a.areAllSectionsOpen()
	for _, section := range a.sections {
		a.setExpanded(expanded, section)
		a.storeState(section, expanded)
	}
	a.updateShowAllButton(expanded)
}

func (a *Accordion) setExpanded(expanded bool, section *accordionSection) {
	textKey, labelKey := "showSection", "showSectionAriaLabel"
	if expanded {
		textKey, labelKey = "hideSection", "hideSectionAriaLabel"
	}

	section.toggleText.SetTextContent(a.i18n.MustT(textKey, nil))
	section.button.SetAttribute("aria-expanded", boolAttr(expanded))

	var label []string
	if headingText := section.button.QuerySelector("." + accordionHeadingTextClass); headingText != nil {
		label = append(label, strings.TrimSpace(headingText.TextContent()))
	}
	if summary := section.button.QuerySelector("." + accordionSectionSummaryClass); summary != nil {
		label = append(label, strings.TrimSpace(summary.TextContent()))
	}
	label = append(label, a.i18n.MustT(labelKey, nil))
	section.button.SetAttribute("aria-label", strings.Join(label, " , "))

	if expanded {
		section.content.RemoveAttribute("hidden")
		section.root.AddClass(accordionSectionExpandedClass)
		section.icon.RemoveClass(accordionChevronDownClass)
	} else {
		section.content.SetAttribute("hidden", "until-found")
		section.root.RemoveClass(accordionSectionExpandedClass)
		section.icon.AddClass(accordionChevronDownClass)
	}

	a.updateShowAllButton(a.areAllSectionsOpen())
}

func (a *Accordion) isExpanded(section *accordionSection) bool {
	return section.root.HasClass(accordionSectionExpandedClass)
}

func (a *Accordion) areAllSectionsOpen() bool {
	for _, section := range a.sections {
		if !a.isExpanded(section) {
			return false
		}
	}
	return true
}

func (a *Accordion) updateShowAllButton(expanded bool) {
	key := "showAllSections"
	if expanded {
		key = "hideAllSections"
	}
	a.showAllButton.SetAttribute("aria-expanded", boolAttr(expanded))
	a.showAllText.SetTextContent(a.i18n.MustT(key, nil))
	a.showAllIcon.ToggleClass(accordionChevronDownClass, !expanded)
}

func (a *Accordion) storeState(section *accordionSection, expanded bool) {
	if !a.Config.Bool("rememberExpanded") {
		return
	}
	if id := section.button.GetAttribute("aria-controls"); id != "" {
		writeSession(a.Document, id, expanded)
	}
}

func (a *Accordion) setInitialState(section *accordionSection) {
	if !a.Config.Bool("rememberExpanded") {
		return
	}
	id := section.button.GetAttribute("aria-controls")
	if id == "" {
		return
	}
	if expanded, ok := readSession(a.Document, id); ok {
		a.setExpanded(expanded, section)
	}
}

// Expanded reports whether the section at index is open.
func (a *Accordion) Expanded(index int) bool {
	if index < 0 || index >= len(a.sections) {
		return false
	}
	return a.isExpanded(a.sections[index])
}

// SectionCount returns the number of sections.
func (a *Accordion) SectionCount() int {
	return len(a.sections)
}
