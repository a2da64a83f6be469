package iwb

import (
	"testing"

	"go.uber.org/zap"
)

func TestFitCanvas_EnlargesOnOverflow(t *testing.T) {
	page := parsePage(t, `<page width="100" height="100">`+
		`<rect x="10" y="10" width="50" height="50" transform="translate(60, 0)"/>`+
		`</page>`)

	fitCanvas(page, contentExtent(page), 100, zap.NewNop())

	if got := page.SelectAttrValue("width", ""); got != "220" {
		t.Errorf("width = %q, want 220", got)
	}
	if got := page.SelectAttrValue("height", ""); got != "160" {
		t.Errorf("height = %q, want 160", got)
	}
}

func TestFitCanvas_NoOverflowUnchanged(t *testing.T) {
	page := parsePage(t, `<page width="800" height="600">`+
		`<rect x="10" y="10" width="50" height="50"/>`+
		`</page>`)

	fitCanvas(page, contentExtent(page), 100, zap.NewNop())

	if got := page.SelectAttrValue("width", ""); got != "800" {
		t.Errorf("width = %q, want unchanged 800", got)
	}
	if got := page.SelectAttrValue("height", ""); got != "600" {
		t.Errorf("height = %q, want unchanged 600", got)
	}
}

func TestFitCanvas_PercentageDimensionsNoOp(t *testing.T) {
	page := parsePage(t, `<page width="100%" height="100%">`+
		`<rect x="0" y="0" width="9999" height="9999"/>`+
		`</page>`)

	fitCanvas(page, contentExtent(page), 100, zap.NewNop())

	if got := page.SelectAttrValue("width", ""); got != "100%" {
		t.Errorf("width = %q, want unchanged 100%%", got)
	}
}

func TestFitCanvas_MissingDimensionsNoOp(t *testing.T) {
	page := parsePage(t, `<page><rect x="0" y="0" width="50" height="50"/></page>`)

	fitCanvas(page, contentExtent(page), 100, zap.NewNop())

	if page.SelectAttr("width") != nil {
		t.Error("width attribute should not be created on a page without one")
	}
}

func TestFitCanvas_NeverShrinks(t *testing.T) {
	// Overflow only on X: width grows, height stays at the larger declared
	// value.
	page := parsePage(t, `<page width="100" height="5000">`+
		`<rect x="0" y="0" width="150" height="10"/>`+
		`</page>`)

	fitCanvas(page, contentExtent(page), 100, zap.NewNop())

	if got := page.SelectAttrValue("width", ""); got != "250" {
		t.Errorf("width = %q, want 250", got)
	}
	if got := page.SelectAttrValue("height", ""); got != "5000" {
		t.Errorf("height = %q, want unchanged 5000", got)
	}
}

func TestFitCanvas_ZeroMargin(t *testing.T) {
	page := parsePage(t, `<page width="100" height="100">`+
		`<rect x="0" y="0" width="150" height="150"/>`+
		`</page>`)

	fitCanvas(page, contentExtent(page), 0, zap.NewNop())

	if got := page.SelectAttrValue("width", ""); got != "150" {
		t.Errorf("width = %q, want 150", got)
	}
}

func TestCanvasDimension(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"800", 800, true},
		{" 600.5 ", 600.5, true},
		{"100%", 0, false},
		{"", 0, false},
		{"0", 0, false},
		{"-5", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		got, ok := canvasDimension(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("canvasDimension(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFormatDimension(t *testing.T) {
	if got := formatDimension(220); got != "220" {
		t.Errorf("formatDimension(220) = %q, want 220", got)
	}
	if got := formatDimension(160.5); got != "160.5" {
		t.Errorf("formatDimension(160.5) = %q, want 160.5", got)
	}
}
