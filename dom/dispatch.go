package dom

// AddEventListener registers a listener on the element and returns a function
// that removes it.
func (e *Element) AddEventListener(eventType string, fn Listener, opts ...ListenerOption) func() {
	return e.listeners.add(eventType, fn, opts...)
}

// ListenerCount returns the number of listeners registered for eventType.
func (e *Element) ListenerCount(eventType string) int {
	return e.listeners.count(eventType)
}

// Dispatch delivers ev to the element, then to its ancestors and the document
// when the event bubbles. It reports whether the default action should run.
func (e *Element) Dispatch(ev *Event) bool {
	if ev.Target == nil {
		ev.Target = e
	}
	path := []*Element{e}
	if ev.Bubbles {
		for p := e.Parent(); p != nil; p = p.Parent() {
			path = append(path, p)
		}
	}
	for _, el := range path {
		ev.CurrentTarget = el
		el.listeners.fire(ev)
		if ev.stopped {
			return !ev.DefaultPrevented()
		}
	}
	if ev.Bubbles {
		ev.CurrentTarget = nil
		e.doc.listeners.fire(ev)
	}
	return !ev.DefaultPrevented()
}

// DispatchEvent fires a plain event of the given type.
func (e *Element) DispatchEvent(eventType string) bool {
	return e.Dispatch(NewEvent(eventType))
}

// Click simulates a user activation including the default actions browsers
// apply to checkboxes, radios, file inputs, submit buttons and links.
func (e *Element) Click() {
	if e.Disabled() {
		return
	}
	tag := e.TagName()
	kind := e.Type()

	var restore func()
	if tag == "input" {
		switch kind {
		case "checkbox":
			was := e.Checked()
			e.SetChecked(!was)
			restore = func() { e.SetChecked(was) }
		case "radio":
			group := e.radioGroup()
			var previous *Element
			for _, radio := range group {
				if radio.Checked() {
					previous = radio
				}
				radio.SetChecked(false)
			}
			e.SetChecked(true)
			restore = func() {
				e.SetChecked(false)
				if previous != nil {
					previous.SetChecked(true)
				}
			}
		}
	}

	if !e.Dispatch(NewEvent("click")) {
		if restore != nil {
			restore()
		}
		return
	}

	switch {
	case tag == "input" && (kind == "checkbox" || kind == "radio"):
		e.DispatchEvent("change")
	case tag == "a":
		if _, ok := e.Attr("href"); ok {
			e.doc.Navigate(e.GetAttribute("href"))
		}
	case tag == "button" && kind == "submit" || tag == "input" && kind == "submit":
		if form := e.Form(); form != nil {
			form.DispatchEvent("submit")
		}
	}
}

func (e *Element) radioGroup() []*Element {
	name := e.GetAttribute("name")
	if name == "" {
		return []*Element{e}
	}
	form := e.Form()
	var group []*Element
	for _, candidate := range e.doc.QuerySelectorAll(`input[type="radio"]`) {
		if candidate.GetAttribute("name") == name && candidate.Form() == form {
			group = append(group, candidate)
		}
	}
	return group
}

// Focus moves focus to the element, blurring the previously focused element.
func (e *Element) Focus() {
	if e.doc.active == e {
		return
	}
	if prev := e.doc.active; prev != nil {
		e.doc.active = nil
		prev.Dispatch(NewEvent("blur"))
	}
	e.doc.active = e
	e.Dispatch(NewEvent("focus"))
}

// Blur removes focus from the element.
func (e *Element) Blur() {
	if e.doc.active != e {
		return
	}
	e.doc.active = nil
	e.Dispatch(NewEvent("blur"))
}

// ScrollIntoView records the element as the document scroll target.
func (e *Element) ScrollIntoView() {
	e.doc.scrolled = e
}

// KeyDown dispatches a keydown event.
func (e *Element) KeyDown(key string, shift bool) bool {
	return e.Dispatch(NewKeyEvent("keydown", key, shift))
}

// KeyUp dispatches a keyup event.
func (e *Element) KeyUp(key string, shift bool) bool {
	return e.Dispatch(NewKeyEvent("keyup", key, shift))
}

// Input replaces the control value and fires the events a keystroke produces.
func (e *Element) Input(value string) {
	e.SetValue(value)
	e.DispatchEvent("input")
	e.KeyUp("", false)
}
