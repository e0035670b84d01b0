// Package virtual tracks which slice of a long row list fits on screen so
// that only those rows are rendered.
package virtual

// Align selects where ScrollToIndex places the target row.
type Align int

const (
	// AlignAuto scrolls the minimum distance needed to reveal the row.
	AlignAuto Align = iota
	AlignStart
	AlignCenter
	AlignEnd
)

func (a Align) String() string {
	switch a {
	case AlignStart:
		return "start"
	case AlignCenter:
		return "center"
	case AlignEnd:
		return "end"
	default:
		return "auto"
	}
}

// List is a window of Height rows over Count items.
type List struct {
	count  int
	height int
	offset int
}

// New builds a list window of the given height.
func New(height int) *List {
	l := &List{}
	l.SetHeight(height)
	return l
}

// SetCount updates the number of items and clamps the offset.
func (l *List) SetCount(n int) {
	if n < 0 {
		n = 0
	}
	l.count = n
	l.clamp()
}

// SetHeight updates the number of visible rows and clamps the offset.
func (l *List) SetHeight(h int) {
	if h < 0 {
		h = 0
	}
	l.height = h
	l.clamp()
}

// Count returns the number of items.
func (l *List) Count() int { return l.count }

// Height returns the number of visible rows.
func (l *List) Height() int { return l.height }

// Offset returns the index of the first visible item.
func (l *List) Offset() int { return l.offset }

// Window returns the half-open range of visible item indexes.
func (l *List) Window() (start, end int) {
	end = l.offset + l.height
	if end > l.count {
		end = l.count
	}
	return l.offset, end
}

// ScrollToIndex moves the window so item i is visible, placed according to
// align. Out of range indexes are clamped.
func (l *List) ScrollToIndex(i int, align Align) {
	if l.count == 0 || l.height <= 0 {
		l.offset = 0
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= l.count {
		i = l.count - 1
	}
	switch align {
	case AlignStart:
		l.offset = i
	case AlignEnd:
		l.offset = i - l.height + 1
	case AlignCenter:
		l.offset = i - l.height/2
	default:
		if i < l.offset {
			l.offset = i
		}
		if upper := l.offset + l.height - 1; i > upper {
			l.offset = i - l.height + 1
		}
	}
	l.clamp()
}

// Reset scrolls back to the top.
func (l *List) Reset() {
	l.offset = 0
}

func (l *List) clamp() {
	maxOffset := l.count - l.height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if l.offset > maxOffset {
		l.offset = maxOffset
	}
	if l.offset < 0 {
		l.offset = 0
	}
}
