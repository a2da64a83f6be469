package iwb

import (
	"fmt"
	"path/filepath"

	"github.com/beevik/etree"
)

// namespaceConfig holds the namespace declarations emitted on a serialized
// page root. It is passed per serialization call; there is no process-wide
// prefix registry.
type namespaceConfig struct {
	SVGPrefix string // prefix used for the svg root element
	SVG       string
	XLink     string
	Default   string // default namespace for unprefixed page children
}

// defaultNamespaces matches the IWB page convention: svg and xlink prefixes
// plus the IWB container namespace as the default.
func defaultNamespaces() namespaceConfig {
	return namespaceConfig{
		SVGPrefix: "svg",
		SVG:       svgNamespace,
		XLink:     xlinkNamespace,
		Default:   iwbNamespace,
	}
}

// buildPageDocument wraps an independently owned copy of the page subtree in
// a standalone SVG document: an svg root carrying the namespace declarations,
// a forced version="1.1", and the page's declared width/height (defaulting to
// 100%). The returned document is detached from the source tree; pipeline
// stages mutate it freely.
func buildPageDocument(page *etree.Element, ns namespaceConfig) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	rootTag := "svg"
	if ns.SVGPrefix != "" {
		rootTag = ns.SVGPrefix + ":svg"
	}
	root := doc.CreateElement(rootTag)
	if ns.Default != "" {
		root.CreateAttr("xmlns", ns.Default)
	}
	if ns.SVGPrefix != "" && ns.SVG != "" {
		root.CreateAttr("xmlns:"+ns.SVGPrefix, ns.SVG)
	}
	if ns.XLink != "" {
		root.CreateAttr("xmlns:xlink", ns.XLink)
	}
	root.CreateAttr("version", "1.1")
	root.CreateAttr("width", page.SelectAttrValue("width", "100%"))
	root.CreateAttr("height", page.SelectAttrValue("height", "100%"))

	// Reparent the copied page's tokens under the new root. The token slice
	// is snapshotted first: AddChild detaches each token from its previous
	// parent, mutating the slice being walked.
	pageCopy := page.Copy()
	tokens := append([]etree.Token(nil), pageCopy.Child...)
	for _, tok := range tokens {
		root.AddChild(tok)
	}

	return doc
}

// pageFileName returns the output file name for a zero-based page index.
func pageFileName(index int) string {
	return fmt.Sprintf("page_%d.svg", index)
}

// writePage serializes the processed page document to a numbered path under
// outputDir and returns the path written.
func writePage(doc *etree.Document, outputDir string, index int) (string, error) {
	outPath := filepath.Join(outputDir, pageFileName(index))
	if err := doc.WriteToFile(outPath); err != nil {
		return "", fmt.Errorf("iwb: write %s: %w", outPath, err)
	}
	return outPath, nil
}
