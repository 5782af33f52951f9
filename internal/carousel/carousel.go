// Package carousel implements the slide rotation engine behind the catalog
// showcase. The engine is a plain state machine: callers feed it navigation,
// gesture, and timer events and read the resulting slide index. It has no
// goroutines of its own; Autoplay drives it on a ticker.
package carousel

// DragThreshold is the minimum horizontal travel, in pixels, for a released
// drag to count as a slide change.
const DragThreshold = 50

// Viewport breakpoints for slides-per-view classification.
const (
	narrowViewport = 768

	narrowItemsPerSlide = 1
	wideItemsPerSlide   = 4
)

// ItemsPerSlide classifies a viewport width into a slides-per-view count.
func ItemsPerSlide(width int) int {
	if width < narrowViewport {
		return narrowItemsPerSlide
	}
	return wideItemsPerSlide
}

// State is a snapshot of the engine's observable state.
type State struct {
	Index         int  `json:"index"`
	SlideCount    int  `json:"slide_count"`
	ItemCount     int  `json:"item_count"`
	ItemsPerSlide int  `json:"items_per_slide"`
	Dragging      bool `json:"dragging"`
}

// Engine tracks the current slide of one carousel. Not safe for concurrent
// use; callers serialize access.
type Engine struct {
	index         int
	itemCount     int
	itemsPerSlide int

	dragging  bool
	dragStart int
	dragPos   int
}

// New creates an engine for itemCount items at the given slides-per-view.
// An itemsPerSlide below 1 is coerced to 1.
func New(itemCount, itemsPerSlide int) *Engine {
	e := &Engine{}
	e.SetItemsPerSlide(itemsPerSlide)
	e.SetItems(itemCount)
	return e
}

// SlideCount returns the number of slides: ceil(itemCount / itemsPerSlide).
func (e *Engine) SlideCount() int {
	if e.itemCount <= 0 {
		return 0
	}
	return (e.itemCount + e.itemsPerSlide - 1) / e.itemsPerSlide
}

// Index returns the current slide index.
func (e *Engine) Index() int {
	return e.index
}

// State returns a snapshot of the current state.
func (e *Engine) State() State {
	return State{
		Index:         e.index,
		SlideCount:    e.SlideCount(),
		ItemCount:     e.itemCount,
		ItemsPerSlide: e.itemsPerSlide,
		Dragging:      e.dragging,
	}
}

// SetItems updates the item count. The current index is kept when it still
// addresses a valid slide and reset to the start otherwise.
func (e *Engine) SetItems(count int) {
	if count < 0 {
		count = 0
	}
	e.itemCount = count
	e.clampIndex()
}

// SetItemsPerSlide updates the slides-per-view count and re-derives the
// slide geometry.
func (e *Engine) SetItemsPerSlide(n int) {
	if n < 1 {
		n = 1
	}
	e.itemsPerSlide = n
	e.clampIndex()
}

// SetViewport reclassifies the viewport width and re-derives the geometry.
func (e *Engine) SetViewport(width int) {
	e.SetItemsPerSlide(ItemsPerSlide(width))
}

func (e *Engine) clampIndex() {
	if n := e.SlideCount(); e.index >= n {
		e.index = 0
	}
}

// Next advances one slide, wrapping past the last slide to the first.
// Reports whether the index changed.
func (e *Engine) Next() bool {
	n := e.SlideCount()
	if n == 0 {
		return false
	}
	prev := e.index
	e.index = (e.index + 1) % n
	return e.index != prev
}

// Prev steps back one slide, wrapping from the first slide to the last.
// Reports whether the index changed.
func (e *Engine) Prev() bool {
	n := e.SlideCount()
	if n == 0 {
		return false
	}
	prev := e.index
	e.index = (e.index - 1 + n) % n
	return e.index != prev
}

// GoTo jumps straight to slide i. Out-of-range indices are ignored.
func (e *Engine) GoTo(i int) bool {
	if i < 0 || i >= e.SlideCount() || i == e.index {
		return false
	}
	e.index = i
	return true
}

// TimerTick advances one slide unless a drag is in progress or there is
// nothing to show. Reports whether the index changed.
func (e *Engine) TimerTick() bool {
	if e.dragging || e.SlideCount() == 0 {
		return false
	}
	return e.Next()
}

// DragStart begins a drag gesture at horizontal position x.
func (e *Engine) DragStart(x int) {
	e.dragging = true
	e.dragStart = x
	e.dragPos = x
}

// DragMove updates the gesture position. Ignored when no drag is active.
func (e *Engine) DragMove(x int) {
	if !e.dragging {
		return
	}
	e.dragPos = x
}

// DragEnd releases the gesture. Travel beyond the threshold moves exactly
// one slide: dragging left advances, dragging right goes back. Shorter
// travel snaps back with no change. Reports whether the index changed.
func (e *Engine) DragEnd() bool {
	if !e.dragging {
		return false
	}
	delta := e.dragPos - e.dragStart
	e.dragging = false
	e.dragStart = 0
	e.dragPos = 0

	switch {
	case delta < -DragThreshold:
		return e.Next()
	case delta > DragThreshold:
		return e.Prev()
	default:
		return false
	}
}
