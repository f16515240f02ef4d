package components

import (
	"fmt"

	frontend "github.com/goliatone/go-govuk-frontend"
	"github.com/goliatone/go-govuk-frontend/dom"
)

const (
	fileUploadButtonClass   = "govuk-file-upload-button"
	fileUploadEmptyClass    = "govuk-file-upload-button--empty"
	fileUploadDraggingClass = "govuk-file-upload-button--dragging"
)

// FileUploadDefinition describes govuk-file-upload.
var FileUploadDefinition = &frontend.Definition{
	ModuleName: "govuk-file-upload",
	Defaults: frontend.MustObject(map[string]any{
		"i18n": map[string]any{
			"chooseFilesButton": "Choose file",
			"dropInstruction":   "or drop file",
			"noFileChosen":      "No file chosen",
			"multipleFilesChosen": map[string]any{
				"one":   "%{count} file chosen",
				"other": "%{count} files chosen",
			},
			"enteredDropZone": "Entered drop zone",
			"leftDropZone":    "Left drop zone",
		},
	}),
	Schema: &frontend.Schema{
		Properties: map[string]frontend.SchemaProperty{
			"i18n": {Type: frontend.TypeObject},
		},
	},
}

// FileUploadConstructor creates file uploads with frontend.CreateAll.
var FileUploadConstructor = frontend.Constructor[*FileUpload]{
	Definition: FileUploadDefinition,
	New:        NewFileUpload,
}

// FileUpload replaces the native file input with a button that reports the
// chosen files and accepts dropped files.
type FileUpload struct {
	frontend.Base

	i18n          *frontend.I18n
	id            string
	input         *dom.Element
	label         *dom.Element
	button        *dom.Element
	status        *dom.Element
	announcements *dom.Element

	enteredAnotherElement bool
}

// NewFileUpload binds a file upload to root.
func NewFileUpload(root *dom.Element, options frontend.Object) (*FileUpload, error) {
	base, err := frontend.Setup(FileUploadDefinition, root, options)
	if err != nil {
		return nil, err
	}

	input := root.QuerySelector("input")
	if input == nil {
		return nil, base.ElementError("File inputs (`<input type=\"file\">`)")
	}
	if input.Type() != "file" {
		return nil, frontend.ElementErrorf(base.Module, "File input (`<input type=\"file\">`) attribute (`type`) is not `file`")
	}
	if input.ID() == "" {
		return nil, base.ElementError("File input (`<input type=\"file\">`) attribute (`id`)")
	}

	f := &FileUpload{
		Base:  base,
		i18n:  base.I18n(frontend.WithLocale(frontend.ResolveLocale(input, ""))),
		id:    input.ID(),
		input: input,
	}

	f.label = f.Document.QuerySelector(fmt.Sprintf(`label[for="%s"]`, f.id))
	if f.label == nil {
		return nil, base.ElementError(fmt.Sprintf("Field label (`<label for=%s>`)", f.id))
	}
	if f.label.ID() == "" {
		f.label.SetID(f.id + "-label")
	}
	f.input.SetID(f.id + "-input")

	f.buildButton()
	f.input.SetAttribute("tabindex", "-1")
	f.input.SetAttribute("aria-hidden", "true")
	f.input.AddEventListener("change", func(*dom.Event) {
		f.onChange()
	})
	f.updateDisabledState()

	f.announcements = createElement(f.Document, "span", "govuk-file-upload-announcements", visuallyHiddenClass)
	f.announcements.SetAttribute("aria-live", "assertive")
	f.Root.After(f.announcements)

	f.button.AddEventListener("drop", f.onDrop)
	f.Document.AddEventListener("dragenter", f.updateDropzoneVisibility)
	f.Document.AddEventListener("dragenter", func(*dom.Event) {
		f.enteredAnotherElement = true
	})
	f.Document.AddEventListener("dragleave", func(*dom.Event) {
		if !f.enteredAnotherElement && !f.button.Disabled() {
			f.hideDraggingState()
			f.announcements.SetTextContent(f.i18n.MustT("leftDropZone", nil))
		}
		f.enteredAnotherElement = false
	})
	return f, nil
}

// buildButton renders the button that takes over the original input id so
// the field label points at it.
func (f *FileUpload) buildButton() {
	doc := f.Document

	f.button = createElement(doc, "button", fileUploadButtonClass, fileUploadEmptyClass)
	f.button.SetAttribute("type", "button")
	f.button.SetID(f.id)
	if describedBy := f.input.GetAttribute("aria-describedby"); describedBy != "" {
		f.button.SetAttribute("aria-describedby", describedBy)
	}

	f.status = createSpan(doc, f.i18n.MustT("noFileChosen", nil), "govuk-body", "govuk-file-upload-button__status")
	f.status.SetAttribute("aria-live", "polite")
	f.button.AppendChild(f.status)

	comma := createSpan(doc, ", ", visuallyHiddenClass)
	comma.SetID(f.id + "-comma")
	f.button.AppendChild(comma)

	container := createElement(doc, "span", "govuk-file-upload-button__pseudo-button-container")
	container.AppendChild(createSpan(doc, f.i18n.MustT("chooseFilesButton", nil),
		"govuk-button", "govuk-button--secondary", "govuk-file-upload-button__pseudo-button"))
	container.AppendChild(createSpan(doc, f.i18n.MustT("dropInstruction", nil),
		"govuk-body", "govuk-file-upload-button__instruction"))
	f.button.AppendChild(container)

	f.button.SetAttribute("aria-labelledby", fmt.Sprintf("%s %s %s", f.label.ID(), comma.ID(), f.button.ID()))
	f.button.AddEventListener("click", func(*dom.Event) {
		f.input.Click()
	})
	f.button.AddEventListener("dragover", func(ev *dom.Event) {
		ev.PreventDefault()
	})

	f.Root.Prepend(f.button)
}

func (f *FileUpload) onChange() {
	files := f.input.Files()
	switch len(files) {
	case 0:
		f.status.SetTextContent(f.i18n.MustT("noFileChosen", nil))
		f.button.AddClass(fileUploadEmptyClass)
		return
	case 1:
		f.status.SetTextContent(files[0].Name)
	default:
		f.status.SetTextContent(f.i18n.MustT("multipleFilesChosen", frontend.Data{"count": len(files)}))
	}
	f.button.RemoveClass(fileUploadEmptyClass)
}

func (f *FileUpload) updateDropzoneVisibility(ev *dom.Event) {
	if f.button.Disabled() {
		return
	}

	if ev.Target != nil && f.Root.Contains(ev.Target) {
		if len(ev.Files) > 0 && !f.button.HasClass(fileUploadDraggingClass) {
			f.showDraggingState()
			f.announcements.SetTextContent(f.i18n.MustT("enteredDropZone", nil))
		}
		return
	}

	if f.button.HasClass(fileUploadDraggingClass) {
		f.hideDraggingState()
		f.announcements.SetTextContent(f.i18n.MustT("leftDropZone", nil))
	}
}

func (f *FileUpload) showDraggingState() {
	f.button.AddClass(fileUploadDraggingClass)
}

func (f *FileUpload) hideDraggingState() {
	f.button.RemoveClass(fileUploadDraggingClass)
}

func (f *FileUpload) onDrop(ev *dom.Event) {
	ev.PreventDefault()
	if len(ev.Files) > 0 {
		f.input.SetFiles(ev.Files...)
		f.input.DispatchEvent("change")
		f.hideDraggingState()
	}
}

// updateDisabledState mirrors the input disabled attribute on the button.
func (f *FileUpload) updateDisabledState() {
	if f.input.Disabled() {
		f.button.SetAttribute("disabled", "")
	} else {
		f.button.RemoveAttribute("disabled")
	}
	f.Root.ToggleClass("govuk-drop-zone--disabled", f.input.Disabled())
}

// SyncDisabled refreshes the button after the input disabled attribute changed.
func (f *FileUpload) SyncDisabled() {
	f.updateDisabledState()
}
