package iwb

import "testing"

func TestRemoveFills_FillAttribute(t *testing.T) {
	page := parsePage(t, `<page><rect x="0" y="0" width="10" height="10" fill="#ff0000"/></page>`)
	removeFills(page)

	rect := page.FindElement("rect")
	if got := rect.SelectAttrValue("fill", ""); got != "none" {
		t.Errorf("fill = %q, want none", got)
	}
}

func TestRemoveFills_StyleAttribute(t *testing.T) {
	page := parsePage(t, `<page><rect style="fill:#fff;stroke:#000"/></page>`)
	removeFills(page)

	rect := page.FindElement("rect")
	if got := rect.SelectAttrValue("style", ""); got != "fill:none;stroke:#000" {
		t.Errorf("style = %q, want fill:none;stroke:#000", got)
	}
}

func TestRemoveFills_BareShapeGainsFillNone(t *testing.T) {
	page := parsePage(t, `<page><rect width="10" height="10"/></page>`)
	removeFills(page)

	rect := page.FindElement("rect")
	if got := rect.SelectAttrValue("fill", ""); got != "none" {
		t.Errorf("bare shape fill = %q, want none", got)
	}
}

func TestRemoveFills_NonShapeNotForced(t *testing.T) {
	page := parsePage(t, `<page><g><rect width="1" height="1"/></g></page>`)
	removeFills(page)

	g := page.FindElement("g")
	if g.SelectAttr("fill") != nil {
		t.Error("non-shape element without fill should not gain one")
	}
	// But an explicit fill on a non-shape is still stripped.
	page2 := parsePage(t, `<page><g fill="#abc"/></page>`)
	removeFills(page2)
	if got := page2.FindElement("g").SelectAttrValue("fill", ""); got != "none" {
		t.Errorf("non-shape explicit fill = %q, want none", got)
	}
}

func TestRemoveFills_StyleWithoutFillOnShape(t *testing.T) {
	page := parsePage(t, `<page><circle r="5" style="stroke:#000"/></page>`)
	removeFills(page)

	circle := page.FindElement("circle")
	if got := circle.SelectAttrValue("style", ""); got != "stroke:#000;fill:none" {
		t.Errorf("style = %q, want stroke:#000;fill:none", got)
	}
}

func TestRemoveFills_MalformedStyleLeftAlone(t *testing.T) {
	// All segments drop out, so the rewrite produces nothing and the
	// original value stays.
	page := parsePage(t, `<page><g style="garbage"/></page>`)
	removeFills(page)

	if got := page.FindElement("g").SelectAttrValue("style", ""); got != "garbage" {
		t.Errorf("style = %q, want original garbage value", got)
	}
}

func TestRemoveFills_ExemptPrefixes(t *testing.T) {
	page := parsePage(t, `<page>`+
		`<path id="Autoshape1" fill="#123456" d="M0 0"/>`+
		`<text id="Word2" fill="#654321">w</text>`+
		`<rect id="Autograph" fill="#aaa"/>`+
		`</page>`)
	removeFills(page)

	if got := page.FindElement("path").SelectAttrValue("fill", ""); got != "#123456" {
		t.Errorf("Autoshape fill = %q, want preserved #123456", got)
	}
	if got := page.FindElement("text").SelectAttrValue("fill", ""); got != "#654321" {
		t.Errorf("Word fill = %q, want preserved #654321", got)
	}
	// "Autograph" does not start with "Autoshape", so it is stripped.
	if got := page.FindElement("rect").SelectAttrValue("fill", ""); got != "none" {
		t.Errorf("Autograph fill = %q, want none", got)
	}
}

func TestRewriteStyleFill(t *testing.T) {
	tests := []struct {
		style   string
		isShape bool
		want    string
	}{
		{"fill:#fff;stroke:#000", true, "fill:none;stroke:#000"},
		{"fill:#fff;stroke:#000", false, "fill:none;stroke:#000"},
		{"stroke:#000", true, "stroke:#000;fill:none"},
		{"stroke:#000", false, "stroke:#000"},
		{" fill : #fff ; stroke : red ", true, "fill:none;stroke:red"},
		{"fill:#fff;;stroke:#000", true, "fill:none;stroke:#000"},
		{"", true, "fill:none"},
		{"", false, ""},
		{"garbage", false, ""},
	}
	for _, tt := range tests {
		if got := rewriteStyleFill(tt.style, tt.isShape); got != tt.want {
			t.Errorf("rewriteStyleFill(%q, %v) = %q, want %q", tt.style, tt.isShape, got, tt.want)
		}
	}
}
