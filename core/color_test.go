package core

import "testing"

func TestRGBHex(t *testing.T) {
	if got := (RGB{0, 186, 153}).Hex(); got != "#00ba99" {
		t.Errorf("Hex() = %q, want #00ba99", got)
	}
}

func TestDefaultPaletteSize(t *testing.T) {
	if len(DefaultPalette) != 8 {
		t.Errorf("Expected 8 palette colors, got %d", len(DefaultPalette))
	}
}
