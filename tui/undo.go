// ABOUTME: Undo/redo stack manager for selector changes
// ABOUTME: Manages selection history with maximum stack size limit

package tui

import "mood-dashboard/analysis"

// UndoManager manages undo/redo stacks of selections with a maximum size
type UndoManager struct {
	undoStack []analysis.Selection
	redoStack []analysis.Selection
	maxSize   int
}

// NewUndoManager creates a new undo manager with the specified max stack size
func NewUndoManager(maxSize int) *UndoManager {
	return &UndoManager{maxSize: maxSize}
}

// Push records the selection in effect before a change
// Clears the redo stack (you can't redo after a new change)
func (um *UndoManager) Push(sel analysis.Selection) {
	um.undoStack = pushBounded(um.undoStack, sel, um.maxSize)
	um.redoStack = nil
}

// Undo returns the previous selection, saving current for redo
func (um *UndoManager) Undo(current analysis.Selection) (analysis.Selection, bool) {
	if len(um.undoStack) == 0 {
		return analysis.Selection{}, false
	}

	um.redoStack = pushBounded(um.redoStack, current, um.maxSize)

	return pop(&um.undoStack), true
}

// Redo returns the next selection, saving current for undo
func (um *UndoManager) Redo(current analysis.Selection) (analysis.Selection, bool) {
	if len(um.redoStack) == 0 {
		return analysis.Selection{}, false
	}

	um.undoStack = pushBounded(um.undoStack, current, um.maxSize)

	return pop(&um.redoStack), true
}

// UndoSize returns the number of available undo steps
func (um *UndoManager) UndoSize() int {
	return len(um.undoStack)
}

// RedoSize returns the number of available redo steps
func (um *UndoManager) RedoSize() int {
	return len(um.redoStack)
}

func pushBounded(stack []analysis.Selection, sel analysis.Selection, maxSize int) []analysis.Selection {
	stack = append(stack, sel)
	if len(stack) > maxSize {
		stack = stack[1:]
	}

	return stack
}

func pop(stack *[]analysis.Selection) analysis.Selection {
	s := *stack
	top := s[len(s)-1]
	*stack = s[:len(s)-1]

	return top
}
