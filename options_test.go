package iwb

import "testing"

func TestImagesModeString(t *testing.T) {
	tests := []struct {
		mode ImagesMode
		want string
	}{
		{ImagesInline, "data-uri"},
		{ImagesLeave, "nothing"},
		{ImagesCopyDir, "copy"},
		{ImagesMode(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("ImagesMode(%d).String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if !opts.FixFills || !opts.FixSize || !opts.FixImageRefs {
		t.Error("fix flags should default to on")
	}
	if opts.ImagesMode != ImagesInline {
		t.Errorf("ImagesMode = %v, want ImagesInline", opts.ImagesMode)
	}
	if opts.ResizeMargin != 100 {
		t.Errorf("ResizeMargin = %v, want 100", opts.ResizeMargin)
	}
	if opts.DeleteBackgroundImages {
		t.Error("DeleteBackgroundImages should default to off")
	}
}

func TestOptionsLogger_NilSafe(t *testing.T) {
	var opts Options
	if opts.logger() == nil {
		t.Fatal("logger() must never return nil")
	}
}
