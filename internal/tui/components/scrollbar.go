package components

import "strings"

// renderScrollbar renders a 1-column vertical scrollbar: a blank gutter
// while content fits the viewport, otherwise a track with a thumb sized by
// the visible fraction and positioned by the scroll offset.
func renderScrollbar(viewHeight, contentHeight, yOffset int) string {
	if viewHeight <= 0 {
		return ""
	}

	const (
		track = "│"
		thumb = "█"
	)

	if contentHeight <= viewHeight {
		return strings.TrimSuffix(strings.Repeat(" \n", viewHeight), "\n")
	}

	thumbSize := viewHeight * viewHeight / contentHeight
	if thumbSize < 1 {
		thumbSize = 1
	}

	maxYOffset := contentHeight - viewHeight
	thumbMaxTop := viewHeight - thumbSize
	thumbTop := 0
	if maxYOffset > 0 {
		thumbTop = yOffset * thumbMaxTop / maxYOffset
	}
	if thumbTop > thumbMaxTop {
		thumbTop = thumbMaxTop
	}
	if thumbTop < 0 {
		thumbTop = 0
	}

	var b strings.Builder
	for i := 0; i < viewHeight; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i >= thumbTop && i < thumbTop+thumbSize {
			b.WriteString(thumb)
		} else {
			b.WriteString(track)
		}
	}
	return b.String()
}
