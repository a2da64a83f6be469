package iwb

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
)

// fitCanvas compares the computed content extent against the declared canvas
// size and enlarges the canvas, with the given safety margin, when content
// overflows. Percentage or otherwise non-numeric declared dimensions make
// the resizer a no-op: there is nothing to compare against. The canvas is
// never shrunk.
func fitCanvas(root *etree.Element, ex extent, margin float64, log *zap.Logger) {
	width, okW := canvasDimension(root.SelectAttrValue("width", ""))
	height, okH := canvasDimension(root.SelectAttrValue("height", ""))
	if !okW || !okH {
		return
	}

	if ex.maxX <= width && ex.maxY <= height {
		return
	}

	newWidth := width
	if v := ex.maxX + margin; v > newWidth {
		newWidth = v
	}
	newHeight := height
	if v := ex.maxY + margin; v > newHeight {
		newHeight = v
	}

	root.CreateAttr("width", formatDimension(newWidth))
	root.CreateAttr("height", formatDimension(newHeight))
	log.Debug("canvas enlarged to fit content",
		zap.Float64("maxX", ex.maxX),
		zap.Float64("maxY", ex.maxY),
		zap.Float64("width", newWidth),
		zap.Float64("height", newHeight))
}

// canvasDimension parses a declared width/height string. Percentages and
// non-positive values are rejected.
func canvasDimension(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasSuffix(s, "%") {
		return 0, false
	}
	v, ok := parseNumeric(s)
	if !ok || v <= 0 {
		return 0, false
	}
	return v, true
}

// formatDimension stringifies a dimension in minimal decimal form.
func formatDimension(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
