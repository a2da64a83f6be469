package iwb

import (
	"github.com/beevik/etree"
)

// lineHeight is the vertical advance forced onto tspans that start a new
// visual line when a textarea is flattened.
const lineHeight = "1.2em"

// flattenTextAreas rewrites every vendor textarea element in the tree into a
// standard text element. The textarea's multi-line convention uses tbreak
// child elements as line separators; a flattened text element instead carries
// explicit line-start tspans with x reset to the textarea's anchor and a
// fixed dy advance, which standard SVG renderers understand.
func flattenTextAreas(root *etree.Element) {
	for _, ta := range collectElements(root, func(e *etree.Element) bool { return e.Tag == "textarea" }) {
		flattenTextArea(root, ta)
	}
}

// flattenTextArea replaces a single textarea with its flattened text
// equivalent at the same position among its parent's children.
func flattenTextArea(root, ta *etree.Element) {
	parent := ta.Parent()
	if parent == nil {
		// Detached lookup failed; locate the true parent in the full tree.
		parent = findParent(root, ta)
	}
	if parent == nil {
		return
	}

	repl := newSiblingElement(ta, "text")

	// Carry all attributes over in declaration order.
	for _, at := range ta.Attr {
		repl.CreateAttr(attrKey(at), at.Value)
	}

	anchorX := ta.SelectAttrValue("x", "0")

	// Walk the textarea's child tokens in order. tbreak elements are
	// dropped; the element immediately following a tbreak, if it is a
	// tspan, becomes the start of a new visual line. Character data
	// (direct text and inter-child tails) is copied through verbatim and
	// does not reset tbreak adjacency.
	afterBreak := false
	for _, tok := range ta.Child {
		switch c := tok.(type) {
		case *etree.Element:
			if c.Tag == "tbreak" {
				afterBreak = true
				continue
			}
			clone := c.Copy()
			if afterBreak && c.Tag == "tspan" {
				clone.CreateAttr("x", anchorX)
				clone.CreateAttr("dy", lineHeight)
			}
			afterBreak = false
			repl.AddChild(clone)
		case *etree.CharData:
			repl.AddChild(etree.NewText(c.Data))
		}
	}

	// Substitute at the textarea's position. The textarea's tail stays in
	// place: it is a sibling token of the element being swapped out.
	idx := ta.Index()
	parent.InsertChildAt(idx, repl)
	parent.RemoveChild(ta)
}

// newSiblingElement creates a detached element with the given local tag,
// reusing the namespace prefix of ref so the replacement serializes in the
// same namespace as the element it stands in for.
func newSiblingElement(ref *etree.Element, tag string) *etree.Element {
	if ref.Space != "" {
		return etree.NewElement(ref.Space + ":" + tag)
	}
	return etree.NewElement(tag)
}

// attrKey returns the full (possibly prefixed) attribute key.
func attrKey(at etree.Attr) string {
	if at.Space != "" {
		return at.Space + ":" + at.Key
	}
	return at.Key
}
