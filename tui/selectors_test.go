// ABOUTME: Tests for selector widgets, the selector manager, undo history and list scrolling
// ABOUTME: Verifies wrap-around, listener firing and stack limits

package tui

import (
	"testing"

	"mood-dashboard/analysis"
)

func TestSelectorWidgetCycles(t *testing.T) {
	w := NewSelectorWidget("mood-selection", "Mood", []string{"happy", "sad", "chill"}, "chill")

	fired := 0
	w.OnChange(func() { fired++ })

	w.Next()

	if w.Value() != "happy" {
		t.Errorf("Expected wrap to happy, got %s", w.Value())
	}

	w.Prev()
	w.Prev()

	if w.Value() != "sad" {
		t.Errorf("Expected sad, got %s", w.Value())
	}

	if fired != 3 {
		t.Errorf("Expected 3 notifications, got %d", fired)
	}
}

func TestSelectorWidgetInitialValue(t *testing.T) {
	w := NewSelectorWidget("x", "X", []string{"a", "b"}, "missing")
	if w.Value() != "a" {
		t.Errorf("Expected first option for unknown value, got %s", w.Value())
	}

	empty := NewSelectorWidget("x", "X", nil, "a")
	if empty.Value() != "" {
		t.Errorf("Expected empty value without options, got %s", empty.Value())
	}

	empty.Next()
}

func TestSelectorWidgetSet(t *testing.T) {
	w := NewSelectorWidget("x", "X", []string{"a", "b"}, "a")

	fired := 0
	w.OnChange(func() { fired++ })

	if w.Set("a") || w.Set("zzz") {
		t.Error("Set should report no change for current or unknown values")
	}

	if !w.Set("b") || w.Value() != "b" {
		t.Error("Expected Set to change value")
	}

	if !w.restore("a") || fired != 1 {
		t.Errorf("restore should change silently, fired=%d", fired)
	}
}

func TestSelectorWidgetSetOptions(t *testing.T) {
	w := NewSelectorWidget("x", "X", []string{"a", "b", "c"}, "c")

	w.SetOptions([]string{"c", "d"})

	if w.Value() != "c" {
		t.Errorf("Expected value kept, got %s", w.Value())
	}

	w.SetOptions([]string{"e"})

	if w.Value() != "e" {
		t.Errorf("Expected first option, got %s", w.Value())
	}
}

func TestSelectorManagerNavigation(t *testing.T) {
	sm := NewSelectorManager([]*SelectorWidget{
		NewSelectorWidget("a", "A", []string{"1"}, "1"),
		NewSelectorWidget("b", "B", []string{"2"}, "2"),
	})

	sm.SelectPrevious()

	if sm.Selected() != 0 {
		t.Errorf("Expected 0, got %d", sm.Selected())
	}

	sm.SelectNext()
	sm.SelectNext()

	if sm.Selected() != 1 {
		t.Errorf("Expected 1, got %d", sm.Selected())
	}

	if w, ok := sm.Current(); !ok || w.ID != "b" {
		t.Errorf("Unexpected current widget: %+v", w)
	}

	if _, ok := sm.Find("c"); ok {
		t.Error("Expected missing widget")
	}

	if _, ok := NewSelectorManager(nil).Current(); ok {
		t.Error("Expected no current widget for empty manager")
	}
}

func TestUndoManager(t *testing.T) {
	um := NewUndoManager(2)

	a := analysis.Selection{Mood: "a"}
	b := analysis.Selection{Mood: "b"}
	c := analysis.Selection{Mood: "c"}
	d := analysis.Selection{Mood: "d"}

	um.Push(a)
	um.Push(b)
	um.Push(c)

	if um.UndoSize() != 2 {
		t.Fatalf("Expected undo stack capped at 2, got %d", um.UndoSize())
	}

	got, ok := um.Undo(d)
	if !ok || got != c {
		t.Errorf("Undo = %+v, %v", got, ok)
	}

	got, ok = um.Redo(got)
	if !ok || got != d {
		t.Errorf("Redo = %+v, %v", got, ok)
	}

	um.Undo(d)
	um.Push(a)

	if um.RedoSize() != 0 {
		t.Error("Push should clear redo stack")
	}

	um.Undo(a)
	um.Undo(a)

	if _, ok := um.Undo(a); ok {
		t.Error("Expected nothing left to undo")
	}
}

func TestListScrollerOffset(t *testing.T) {
	ls := NewListScroller(12, cardLines) // 3 cards visible

	tests := []struct {
		cursor, total, want int
	}{
		{0, 2, 0},
		{0, 10, 0},
		{1, 10, 0},
		{2, 10, 1 * cardLines},
		{5, 10, 4 * cardLines},
		{9, 10, 7 * cardLines},
	}

	for _, tt := range tests {
		if got := ls.Offset(tt.cursor, tt.total); got != tt.want {
			t.Errorf("Offset(%d, %d) = %d, want %d", tt.cursor, tt.total, got, tt.want)
		}
	}
}
