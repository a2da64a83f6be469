package iwb

import (
	"strings"

	"github.com/beevik/etree"
)

// shapeTags are the local tags whose painting is affected by fill stripping.
var shapeTags = map[string]bool{
	"path":     true,
	"rect":     true,
	"circle":   true,
	"ellipse":  true,
	"polygon":  true,
	"polyline": true,
	"line":     true,
	"text":     true,
}

// exemptIDPrefixes mark vendor decorative elements whose painting must be
// preserved. Exempt elements are skipped entirely: no fill, style, or
// attribute mutation.
var exemptIDPrefixes = []string{"Autoshape", "Word"}

// removeFills mimics Inkscape's "Select All → Fill → None": every shape
// element in the tree has its fill painting forced to none, honoring both
// the fill presentation attribute and the inline style form.
func removeFills(root *etree.Element) {
	walkElements(root, func(e *etree.Element) {
		if isFillExempt(e) {
			return
		}

		hadFill := false
		if at := e.SelectAttr("fill"); at != nil {
			at.Value = "none"
			hadFill = true
		}

		hadStyle := false
		if at := e.SelectAttr("style"); at != nil {
			hadStyle = true
			if rewritten := rewriteStyleFill(at.Value, shapeTags[e.Tag]); rewritten != "" {
				at.Value = rewritten
			}
		}

		if !hadFill && !hadStyle && shapeTags[e.Tag] {
			e.CreateAttr("fill", "none")
		}
	})
}

// isFillExempt reports whether the element's id carries a vendor-reserved
// prefix exempting it from fill stripping.
func isFillExempt(e *etree.Element) bool {
	id := e.SelectAttrValue("id", "")
	for _, prefix := range exemptIDPrefixes {
		if strings.HasPrefix(id, prefix) {
			return true
		}
	}
	return false
}

// rewriteStyleFill rewrites an inline style attribute value so that any fill
// declaration becomes fill:none. Segments without a colon are dropped, as are
// empty segments. When no fill declaration exists and the element is
// shape-bearing, a fill:none declaration is appended. An empty result means
// the caller should leave the original value untouched.
func rewriteStyleFill(style string, isShape bool) string {
	var out []string
	hasFill := false
	for _, part := range strings.Split(style, ";") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		key, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "fill" {
			out = append(out, "fill:none")
			hasFill = true
		} else {
			out = append(out, key+":"+value)
		}
	}
	if !hasFill && isShape {
		out = append(out, "fill:none")
	}
	return strings.Join(out, ";")
}
