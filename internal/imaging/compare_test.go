package imaging

import (
	"image/color"
	"testing"
)

func redBluePalette(t *testing.T) *PaletteResult {
	t.Helper()
	var pix []byte
	for i := 0; i < 20; i++ {
		pix = append(pix, 255, 0, 0, 255, 0, 0, 255, 255)
	}
	p, err := ExtractPalette(pix, PaletteOptions{ColorCount: 2, Quality: 1})
	if err != nil {
		t.Fatalf("ExtractPalette failed: %v", err)
	}
	return p
}

func TestComparePalettes_Identical(t *testing.T) {
	p := redBluePalette(t)

	result, err := ComparePalettes(p, p, 0)
	if err != nil {
		t.Fatalf("ComparePalettes failed: %v", err)
	}

	if result.SimilarityScore != 1.0 {
		t.Errorf("SimilarityScore: got %.3f, want 1.0", result.SimilarityScore)
	}
	if result.MatchedColors != 2 {
		t.Errorf("MatchedColors: got %d, want 2", result.MatchedColors)
	}
	if result.AverageDistance != 0 {
		t.Errorf("AverageDistance: got %.2f, want 0", result.AverageDistance)
	}
	if result.Tolerance != DefaultMatchTolerance {
		t.Errorf("Tolerance: got %d, want %d", result.Tolerance, DefaultMatchTolerance)
	}
}

func TestComparePalettes_Partial(t *testing.T) {
	redBlue := redBluePalette(t)
	red, err := ExtractPalette(solidBuffer(8, color.NRGBA{255, 0, 0, 255}), DefaultPaletteOptions())
	if err != nil {
		t.Fatalf("ExtractPalette failed: %v", err)
	}

	result, err := ComparePalettes(redBlue, red, 10)
	if err != nil {
		t.Fatalf("ComparePalettes failed: %v", err)
	}

	if len(result.Matches) != 2 {
		t.Fatalf("Matches: got %d, want 2", len(result.Matches))
	}
	if result.MatchedColors != 1 {
		t.Errorf("MatchedColors: got %d, want 1", result.MatchedColors)
	}
	// Blue is 248+0+248 away from red and holds half the pixels; red matches
	// exactly in the other direction.
	if result.AverageDistance != 124 {
		t.Errorf("AverageDistance: got %.2f, want 124", result.AverageDistance)
	}
	if result.SimilarityScore != 0.838 {
		t.Errorf("SimilarityScore: got %.3f, want 0.838", result.SimilarityScore)
	}
	for _, m := range result.Matches {
		if m.Nearest.Hex != "#FC0404" {
			t.Errorf("nearest of %s: got %s, want #FC0404", m.Color.Hex, m.Nearest.Hex)
		}
	}
}

func TestComparePalettes_Empty(t *testing.T) {
	p := redBluePalette(t)
	empty, err := ExtractPalette(solidBuffer(4, color.NRGBA{255, 255, 255, 255}), DefaultPaletteOptions())
	if err != nil {
		t.Fatalf("ExtractPalette failed: %v", err)
	}

	if _, err := ComparePalettes(p, empty, 0); err == nil {
		t.Error("expected error comparing against an empty palette")
	}
	if _, err := ComparePalettes(empty, p, 0); err == nil {
		t.Error("expected error comparing an empty palette")
	}
}
