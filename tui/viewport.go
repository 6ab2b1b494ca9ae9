// ABOUTME: Scroll offset calculation for the track card list
// ABOUTME: Keeps the card under the cursor centred once the list outgrows the viewport

package tui

// cardLines is the number of lines one track card occupies, including the gap
const cardLines = 4

// ListScroller computes the viewport line offset for a cursor over fixed-height cards
type ListScroller struct {
	height    int // viewport height in lines
	itemLines int // lines per item
}

// NewListScroller creates a scroller for a viewport of height lines
func NewListScroller(height, itemLines int) *ListScroller {
	return &ListScroller{height: height, itemLines: max(1, itemLines)}
}

// SetHeight updates the viewport height
func (ls *ListScroller) SetHeight(height int) {
	ls.height = height
}

// Visible returns how many whole items fit in the viewport
func (ls *ListScroller) Visible() int {
	return max(1, ls.height/ls.itemLines)
}

// Offset returns the first line to show so that item cursor stays visible.
// The cursor stays at the top until it reaches the middle, then the list
// scrolls under it, and near the end the last page stays in view.
func (ls *ListScroller) Offset(cursor, total int) int {
	visible := ls.Visible()
	if total <= visible || cursor < 0 {
		return 0
	}

	first := min(max(0, cursor-visible/2), total-visible)

	return first * ls.itemLines
}
