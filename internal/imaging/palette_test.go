package imaging

import (
	"context"
	"errors"
	"image"
	"image/color"
	"reflect"
	"testing"
	"time"

	"github.com/ironsheep/palette-tools-mcp/internal/mmcq"
)

// solidBuffer returns n RGBA pixels of the given color.
func solidBuffer(n int, c color.NRGBA) []byte {
	pix := make([]byte, 0, n*4)
	for i := 0; i < n; i++ {
		pix = append(pix, c.R, c.G, c.B, c.A)
	}
	return pix
}

func TestPaletteOptions_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   PaletteOptions
		want PaletteOptions
	}{
		{"defaults unchanged", DefaultPaletteOptions(), DefaultPaletteOptions()},
		{"zero values", PaletteOptions{}, PaletteOptions{ColorCount: 1, Quality: 1}},
		{"too large", PaletteOptions{ColorCount: 99, Quality: 50, MaxDimension: 10},
			PaletteOptions{ColorCount: 20, Quality: 10, MaxDimension: 10}},
		{"negative", PaletteOptions{ColorCount: -4, Quality: -1, MaxDimension: -5, IgnoreWhite: true},
			PaletteOptions{ColorCount: 1, Quality: 1, IgnoreWhite: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Normalize(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestValidateBuffer(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"empty", 0, true},
		{"partial pixel", 3, true},
		{"one pixel", 4, false},
		{"trailing bytes", 10, true},
		{"many pixels", 400, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBuffer(make([]byte, tt.size))
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBuffer(%d bytes) error = %v, wantErr %v", tt.size, err, tt.wantErr)
			}
		})
	}
}

func TestExtractPalette(t *testing.T) {
	var pix []byte
	for i := 0; i < 60; i++ {
		pix = append(pix, 255, 0, 0, 255, 0, 0, 255, 255)
	}

	result, err := ExtractPalette(pix, PaletteOptions{ColorCount: 2, Quality: 1})
	if err != nil {
		t.Fatalf("ExtractPalette failed: %v", err)
	}

	want := []string{"rgb(252,4,4)", "rgb(4,4,252)"}
	if got := result.Strings(); !reflect.DeepEqual(got, want) {
		t.Errorf("Strings() = %v, want %v", got, want)
	}
	if result.SampledPixels != 120 {
		t.Errorf("SampledPixels: got %d, want 120", result.SampledPixels)
	}
	for _, c := range result.Colors {
		if c.Population != 60 || c.Percentage != 50 {
			t.Errorf("%s: got population %d (%.1f%%), want 60 (50%%)", c.CSS, c.Population, c.Percentage)
		}
	}
	if result.Colors[0].Hex != "#FC0404" {
		t.Errorf("Hex: got %s, want #FC0404", result.Colors[0].Hex)
	}
}

func TestExtractPalette_ClampsOptions(t *testing.T) {
	result, err := ExtractPalette(solidBuffer(10, color.NRGBA{10, 20, 30, 255}), PaletteOptions{ColorCount: 500, Quality: 0})
	if err != nil {
		t.Fatalf("ExtractPalette failed: %v", err)
	}
	if result.ColorCount != MaxColorCount || result.Quality != MinQuality {
		t.Errorf("effective options: got count=%d quality=%d", result.ColorCount, result.Quality)
	}
}

func TestExtractPalette_AllWhiteIgnored(t *testing.T) {
	result, err := ExtractPalette(solidBuffer(100, color.NRGBA{252, 253, 254, 255}), DefaultPaletteOptions())
	if err != nil {
		t.Fatalf("ExtractPalette failed: %v", err)
	}
	if len(result.Colors) != 0 || result.SampledPixels != 0 {
		t.Errorf("expected empty palette, got %v", result.Strings())
	}
}

func TestExtractPalette_InvalidBuffer(t *testing.T) {
	if _, err := ExtractPalette([]byte{1, 2, 3}, DefaultPaletteOptions()); err == nil {
		t.Error("ExtractPalette should fail for a partial pixel")
	}
	if _, err := ExtractPalette(nil, DefaultPaletteOptions()); err == nil {
		t.Error("ExtractPalette should fail for an empty buffer")
	}
}

func TestExtractPaletteFromImage_Region(t *testing.T) {
	img := createPatternImage(100, 100)
	opts := PaletteOptions{ColorCount: 5, Quality: 1, Region: &Region{X1: 50, Y1: 0, X2: 100, Y2: 50}}

	result, err := ExtractPaletteFromImage(img, opts)
	if err != nil {
		t.Fatalf("ExtractPaletteFromImage failed: %v", err)
	}
	if got := result.Strings(); !reflect.DeepEqual(got, []string{"rgb(4,252,4)"}) {
		t.Errorf("top-right palette: got %v, want green only", got)
	}

	opts.Region = &Region{X1: 10, Y1: 10, X2: 10, Y2: 20}
	if _, err := ExtractPaletteFromImage(img, opts); err == nil {
		t.Error("ExtractPaletteFromImage should fail for an empty region")
	}
}

func TestExtractPaletteFromImage_Downscale(t *testing.T) {
	img := createPatternImage(400, 200)
	opts := PaletteOptions{ColorCount: 4, Quality: 1, MaxDimension: 40}

	result, err := ExtractPaletteFromImage(img, opts)
	if err != nil {
		t.Fatalf("ExtractPaletteFromImage failed: %v", err)
	}
	// 40x20 after fitting into 40x40.
	if result.SampledPixels != 800 {
		t.Errorf("SampledPixels: got %d, want 800", result.SampledPixels)
	}
	if len(result.Colors) == 0 || len(result.Colors) > 4 {
		t.Errorf("palette size %d outside [1,4]", len(result.Colors))
	}
}

func TestExtractPaletteFromImage_IgnoresTransparent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 10; x++ {
			img.SetNRGBA(x, y, color.NRGBA{0, 0, 255, 255})
			img.SetNRGBA(x+10, y, color.NRGBA{255, 0, 0, 100})
		}
	}

	result, err := ExtractPaletteFromImage(img, PaletteOptions{ColorCount: 3, Quality: 1})
	if err != nil {
		t.Fatalf("ExtractPaletteFromImage failed: %v", err)
	}
	if got := result.Strings(); !reflect.DeepEqual(got, []string{"rgb(4,4,252)"}) {
		t.Errorf("got %v, want only the opaque blue", got)
	}
}

func TestExtractPaletteAsync(t *testing.T) {
	pix := solidBuffer(50, color.NRGBA{0, 200, 0, 255})
	future := ExtractPaletteAsync(pix, DefaultPaletteOptions())

	// The buffer was copied; clobbering it must not change the result.
	for i := range pix {
		pix[i] = 0
	}

	result, err := future.Wait(context.Background())
	if err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if got := result.Strings(); !reflect.DeepEqual(got, []string{"rgb(4,204,4)"}) {
		t.Errorf("got %v, want [rgb(4,204,4)]", got)
	}
}

func TestExtractPaletteAsync_Errors(t *testing.T) {
	_, err := ExtractPaletteAsync([]byte{1}, DefaultPaletteOptions()).Wait(context.Background())
	if err == nil {
		t.Error("Wait should return the validation error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := &PaletteFuture{done: make(chan struct{})}
	if _, err := f.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Wait on cancelled context: got %v, want context.Canceled", err)
	}

	ctx, cancel = context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := ExtractPaletteAsync(solidBuffer(4, color.NRGBA{1, 1, 1, 255}), DefaultPaletteOptions()).Wait(ctx); err != nil {
		t.Errorf("Wait failed: %v", err)
	}
}

func TestNearestPaletteColor(t *testing.T) {
	var pix []byte
	for i := 0; i < 30; i++ {
		pix = append(pix, 255, 0, 0, 255, 0, 0, 255, 255)
	}
	p, err := ExtractPalette(pix, PaletteOptions{ColorCount: 2, Quality: 1})
	if err != nil {
		t.Fatalf("ExtractPalette failed: %v", err)
	}

	tests := []struct {
		query mmcq.Color
		want  string
		dist  int
	}{
		{mmcq.Color{R: 200, G: 30, B: 60}, "rgb(252,4,4)", 52 + 26 + 56},
		{mmcq.Color{R: 10, G: 0, B: 180}, "rgb(4,4,252)", 6 + 4 + 72},
		{mmcq.Color{R: 252, G: 4, B: 4}, "rgb(252,4,4)", 0},
	}

	for _, tt := range tests {
		t.Run(tt.query.String(), func(t *testing.T) {
			got, err := NearestPaletteColor(p, tt.query)
			if err != nil {
				t.Fatalf("NearestPaletteColor failed: %v", err)
			}
			if got.Nearest.CSS != tt.want || got.Distance != tt.dist {
				t.Errorf("got %s at %d, want %s at %d", got.Nearest.CSS, got.Distance, tt.want, tt.dist)
			}
		})
	}

	empty, _ := ExtractPalette(solidBuffer(4, color.NRGBA{0, 0, 0, 0}), DefaultPaletteOptions())
	if _, err := NearestPaletteColor(empty, mmcq.Color{}); err == nil {
		t.Error("NearestPaletteColor should fail for an empty palette")
	}
}
