package iwb

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// translatePattern matches a translate(x, y) or translate(x y) component of
// a transform attribute: optional signs, decimal values, comma or whitespace
// separator. Other transform components (scale, rotate, matrix) are ignored.
var translatePattern = regexp.MustCompile(`translate\(\s*([-+]?[0-9]*\.?[0-9]+)[\s,]+([-+]?[0-9]*\.?[0-9]+)\s*\)`)

// numberPattern extracts raw numeric tokens (optionally signed, optionally
// decimal) from path data and point lists.
var numberPattern = regexp.MustCompile(`[-+]?[0-9]*\.?[0-9]+`)

// extent tracks the running maxima of a page's content bounding box in page
// coordinates. Only maximum extents matter: the origin is assumed
// non-negative, so the maxima start at (0,0) and never decrease.
type extent struct {
	maxX, maxY float64
}

// grow updates the maxima with a candidate point.
func (ex *extent) grow(x, y float64) {
	if x > ex.maxX {
		ex.maxX = x
	}
	if y > ex.maxY {
		ex.maxY = y
	}
}

// parseNumeric parses a numeric attribute string. The boolean result lets
// call sites choose explicitly to skip-and-continue on bad input instead of
// relying on a swallowed exception.
func parseNumeric(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// contentExtent walks every element in the tree in document order and
// computes the content bounding box maxima. Per-element parse failures
// (missing size attribute, non-numeric value) contribute nothing and never
// abort the scan.
func contentExtent(root *etree.Element) extent {
	var ex extent
	walkElements(root, func(e *etree.Element) {
		tx, ty := localTranslation(e)
		switch e.Tag {
		case "rect", "image":
			x, okX := positionAttr(e, "x")
			y, okY := positionAttr(e, "y")
			w, okW := parseNumeric(e.SelectAttrValue("width", ""))
			h, okH := parseNumeric(e.SelectAttrValue("height", ""))
			if okX && okY && okW && okH {
				ex.grow(x+tx+w, y+ty+h)
			}
		case "circle":
			cx, okX := positionAttr(e, "cx")
			cy, okY := positionAttr(e, "cy")
			r, okR := parseNumeric(e.SelectAttrValue("r", ""))
			if okX && okY && okR {
				ex.grow(cx+tx+r, cy+ty+r)
			}
		case "ellipse":
			cx, okX := positionAttr(e, "cx")
			cy, okY := positionAttr(e, "cy")
			rx, okRX := parseNumeric(e.SelectAttrValue("rx", ""))
			ry, okRY := parseNumeric(e.SelectAttrValue("ry", ""))
			if okX && okY && okRX && okRY {
				ex.grow(cx+tx+rx, cy+ty+ry)
			}
		case "polygon", "polyline":
			growPairs(&ex, strings.ReplaceAll(e.SelectAttrValue("points", ""), ",", " "), tx, ty)
		case "path":
			// Raw numeric-pair scan, not path-grammar parsing: command
			// letters, relative coordinates, and curve control points are
			// all treated as plain (x, y) pairs in emission order. The
			// resize margin absorbs the imprecision.
			growPairs(&ex, e.SelectAttrValue("d", ""), tx, ty)
		}
	})
	return ex
}

// positionAttr reads a positional attribute, defaulting to 0 when absent.
// A present but non-numeric value is a parse failure.
func positionAttr(e *etree.Element, name string) (float64, bool) {
	return parseNumeric(e.SelectAttrValue(name, "0"))
}

// growPairs scans all numeric tokens in s and consumes consecutive pairs as
// (x, y) points offset by (tx, ty). A trailing unpaired token is ignored.
func growPairs(ex *extent, s string, tx, ty float64) {
	tokens := numberPattern.FindAllString(s, -1)
	for i := 0; i+1 < len(tokens); i += 2 {
		x, okX := parseNumeric(tokens[i])
		y, okY := parseNumeric(tokens[i+1])
		if okX && okY {
			ex.grow(x+tx, y+ty)
		}
	}
}

// localTranslation resolves the element's local translation offset from its
// transform attribute. Absent or unparsable transforms yield (0, 0).
func localTranslation(e *etree.Element) (tx, ty float64) {
	transform := e.SelectAttrValue("transform", "")
	if transform == "" {
		return 0, 0
	}
	m := translatePattern.FindStringSubmatch(transform)
	if m == nil {
		return 0, 0
	}
	x, okX := parseNumeric(m[1])
	y, okY := parseNumeric(m[2])
	if !okX || !okY {
		return 0, 0
	}
	return x, y
}
