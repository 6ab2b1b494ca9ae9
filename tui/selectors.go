// ABOUTME: Selector widgets and the manager that moves focus between them
// ABOUTME: Cycling a widget's value notifies its change listeners

package tui

import "slices"

// SelectorWidget is a single-choice selector cycled with left/right
type SelectorWidget struct {
	ID        string
	Label     string
	options   []string
	index     int
	listeners []func()
}

// NewSelectorWidget creates a widget showing value, or the first option if value is not offered
func NewSelectorWidget(id, label string, options []string, value string) *SelectorWidget {
	w := &SelectorWidget{ID: id, Label: label, options: options}
	w.index = max(0, slices.Index(options, value))

	return w
}

// Value returns the selected option, or "" when there are no options
func (w *SelectorWidget) Value() string {
	if len(w.options) == 0 {
		return ""
	}

	return w.options[w.index]
}

// Options returns the offered values
func (w *SelectorWidget) Options() []string {
	return w.options
}

// OnChange registers fn to run after the value changes
func (w *SelectorWidget) OnChange(fn func()) {
	w.listeners = append(w.listeners, fn)
}

// Next selects the following option, wrapping around
func (w *SelectorWidget) Next() {
	w.step(1)
}

// Prev selects the preceding option, wrapping around
func (w *SelectorWidget) Prev() {
	w.step(-1)
}

func (w *SelectorWidget) step(delta int) {
	if len(w.options) < 2 {
		return
	}

	w.index = (w.index + delta + len(w.options)) % len(w.options)
	w.notify()
}

// Set selects value and notifies listeners. Unknown values are ignored.
// Returns true if the value changed.
func (w *SelectorWidget) Set(value string) bool {
	if !w.restore(value) {
		return false
	}

	w.notify()

	return true
}

// restore selects value without notifying listeners
func (w *SelectorWidget) restore(value string) bool {
	i := slices.Index(w.options, value)
	if i < 0 || i == w.index {
		return false
	}

	w.index = i

	return true
}

// SetOptions replaces the offered values, keeping the current value when it is still offered
func (w *SelectorWidget) SetOptions(options []string) {
	current := w.Value()
	w.options = options
	w.index = max(0, slices.Index(options, current))
}

func (w *SelectorWidget) notify() {
	for _, fn := range w.listeners {
		fn()
	}
}

// SelectorManager tracks which selector has focus
type SelectorManager struct {
	widgets       []*SelectorWidget
	selectedIndex int
}

// NewSelectorManager creates a manager over widgets in display order
func NewSelectorManager(widgets []*SelectorWidget) *SelectorManager {
	return &SelectorManager{widgets: widgets}
}

// Selected returns the index of the focused selector
func (sm *SelectorManager) Selected() int {
	return sm.selectedIndex
}

// SelectNext moves focus down
func (sm *SelectorManager) SelectNext() {
	if sm.selectedIndex < len(sm.widgets)-1 {
		sm.selectedIndex++
	}
}

// SelectPrevious moves focus up
func (sm *SelectorManager) SelectPrevious() {
	if sm.selectedIndex > 0 {
		sm.selectedIndex--
	}
}

// Current returns the focused widget
func (sm *SelectorManager) Current() (*SelectorWidget, bool) {
	if sm.selectedIndex >= len(sm.widgets) {
		return nil, false
	}

	return sm.widgets[sm.selectedIndex], true
}

// Find returns the widget with the given element id
func (sm *SelectorManager) Find(id string) (*SelectorWidget, bool) {
	for _, w := range sm.widgets {
		if w.ID == id {
			return w, true
		}
	}

	return nil, false
}

// All returns the widgets in display order
func (sm *SelectorManager) All() []*SelectorWidget {
	return sm.widgets
}

// Count returns the number of widgets
func (sm *SelectorManager) Count() int {
	return len(sm.widgets)
}
