package outline

// DefaultReadingLineFraction places the reading line a third of the way down
// the viewport, where readers' eyes tend to rest.
const DefaultReadingLineFraction = 1.0 / 3.0

// HeadingPosition is a heading anchor with its current distance, in pixels,
// from the top of the viewport. Negative values mean the heading has
// scrolled above the viewport.
type HeadingPosition struct {
	ID  string
	Top float64
}

// Tracker selects the heading currently being read from scroll state.
type Tracker struct {
	// Fraction of the viewport height at which the reading line sits.
	// Zero or negative falls back to DefaultReadingLineFraction.
	Fraction float64
}

func NewTracker() *Tracker {
	return &Tracker{Fraction: DefaultReadingLineFraction}
}

// Active returns the last heading, in document order, whose top has crossed
// above the reading line. If none have crossed yet the first heading is
// active, so the outline highlights something before any scrolling occurs
// and never jumps backward while later headings are still below the fold.
// Returns an empty id when there are no headings at all.
func (t *Tracker) Active(headings []HeadingPosition, viewportHeight float64) string {
	if len(headings) == 0 {
		return ""
	}

	fraction := t.Fraction
	if fraction <= 0 {
		fraction = DefaultReadingLineFraction
	}
	readingLine := viewportHeight * fraction

	active := ""
	for _, h := range headings {
		if h.Top <= readingLine {
			active = h.ID
		}
	}
	if active == "" {
		active = headings[0].ID
	}
	return active
}
