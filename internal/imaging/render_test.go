package imaging

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"testing"
)

// decodeResult decodes the base64 PNG payload of an EncodedImage.
func decodeResult(t *testing.T, e EncodedImage) image.Image {
	t.Helper()
	if e.MimeType != "image/png" {
		t.Fatalf("MimeType: got %s, want image/png", e.MimeType)
	}
	raw, err := base64.StdEncoding.DecodeString(e.ImageBase64)
	if err != nil {
		t.Fatalf("invalid base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("invalid PNG: %v", err)
	}
	return img
}

func rgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func TestRemapToPalette(t *testing.T) {
	img := createPatternImage(20, 20)
	p, err := ExtractPaletteFromImage(img, PaletteOptions{ColorCount: 2, Quality: 1})
	if err != nil {
		t.Fatalf("ExtractPaletteFromImage failed: %v", err)
	}

	result, err := RemapToPalette(img, p)
	if err != nil {
		t.Fatalf("RemapToPalette failed: %v", err)
	}
	if result.Width != 20 || result.Height != 20 {
		t.Errorf("size: got %dx%d, want 20x20", result.Width, result.Height)
	}

	allowed := make(map[color.NRGBA]bool)
	for _, c := range p.Colors {
		allowed[color.NRGBA{c.RGB.R, c.RGB.G, c.RGB.B, 255}] = true
	}

	out := decodeResult(t, result.EncodedImage)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if c := rgbaAt(out, x, y); !allowed[c] {
				t.Fatalf("pixel (%d,%d) = %v is not a palette color", x, y, c)
			}
		}
	}
}

func TestRemapToPalette_EmptyPalette(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	p, err := ExtractPaletteFromImage(img, DefaultPaletteOptions())
	if err != nil {
		t.Fatalf("ExtractPaletteFromImage failed: %v", err)
	}
	if _, err := RemapToPalette(img, p); err == nil {
		t.Error("RemapToPalette should fail for an empty palette")
	}
}

func TestRenderSwatch(t *testing.T) {
	var pix []byte
	for i := 0; i < 20; i++ {
		pix = append(pix, 255, 0, 0, 255, 0, 0, 255, 255)
	}
	p, err := ExtractPalette(pix, PaletteOptions{ColorCount: 2, Quality: 1})
	if err != nil {
		t.Fatalf("ExtractPalette failed: %v", err)
	}

	result, err := RenderSwatch(p, 0, 0, false)
	if err != nil {
		t.Fatalf("RenderSwatch failed: %v", err)
	}
	if result.Width != 2*DefaultSwatchCellSize || result.Height != DefaultSwatchCellSize {
		t.Errorf("size: got %dx%d", result.Width, result.Height)
	}

	out := decodeResult(t, result.EncodedImage)
	if c := rgbaAt(out, 10, 10); c != (color.NRGBA{252, 4, 4, 255}) {
		t.Errorf("left band: got %v, want red", c)
	}
	if c := rgbaAt(out, result.Width-10, result.Height-1); c != (color.NRGBA{4, 4, 252, 255}) {
		t.Errorf("right band: got %v, want blue", c)
	}
}

func TestRenderSwatch_Errors(t *testing.T) {
	p, err := ExtractPalette(solidBuffer(8, color.NRGBA{9, 9, 9, 255}), DefaultPaletteOptions())
	if err != nil {
		t.Fatalf("ExtractPalette failed: %v", err)
	}
	empty, err := ExtractPalette(solidBuffer(8, color.NRGBA{9, 9, 9, 0}), DefaultPaletteOptions())
	if err != nil {
		t.Fatalf("ExtractPalette failed: %v", err)
	}

	tests := []struct {
		name          string
		p             *PaletteResult
		width, height int
	}{
		{"empty palette", empty, 10, 10},
		{"negative height", p, 10, -1},
		{"too wide", p, MaxSwatchDimension + 1, 10},
		{"too tall", p, 10, MaxSwatchDimension + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := RenderSwatch(tt.p, tt.width, tt.height, false); err == nil {
				t.Error("RenderSwatch should fail")
			}
		})
	}
}

func TestQuantizer_GIF(t *testing.T) {
	img := createPatternImage(32, 32)

	palette := Quantizer{Quality: 1}.Quantize(make(color.Palette, 0, 4), img)
	if len(palette) != 4 {
		t.Fatalf("palette size: got %d, want 4", len(palette))
	}

	var buf bytes.Buffer
	opts := &gif.Options{NumColors: 4, Quantizer: Quantizer{Quality: 1}}
	if err := gif.Encode(&buf, img, opts); err != nil {
		t.Fatalf("gif.Encode failed: %v", err)
	}
	decoded, err := gif.Decode(&buf)
	if err != nil {
		t.Fatalf("gif.Decode failed: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("bounds: got %v, want %v", decoded.Bounds(), img.Bounds())
	}
}

func TestQuantizer_NoRoom(t *testing.T) {
	full := color.Palette{color.Black}
	got := Quantizer{}.Quantize(full[:1:1], createPatternImage(4, 4))
	if len(got) != 1 {
		t.Errorf("full palette should be returned unchanged, got %d colors", len(got))
	}
}

func TestExtractPaletteBatch(t *testing.T) {
	red := createTestImage(t, 20, 20, color.RGBA{255, 0, 0, 255})
	blue := createTestImage(t, 20, 20, color.RGBA{0, 0, 255, 255})
	defer os.Remove(red)
	defer os.Remove(blue)

	paths := []string{red, "/nonexistent/image.png", blue}
	items, err := ExtractPaletteBatch(context.Background(), NewImageCache(), paths, DefaultPaletteOptions(), 2)
	if err != nil {
		t.Fatalf("ExtractPaletteBatch failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}

	for i, want := range []string{"rgb(252,4,4)", "", "rgb(4,4,252)"} {
		item := items[i]
		if item.Path != paths[i] {
			t.Errorf("item %d path: got %s, want %s", i, item.Path, paths[i])
		}
		if want == "" {
			if item.Error == "" || item.Palette != nil {
				t.Errorf("item %d: expected an error, got %+v", i, item)
			}
			continue
		}
		if item.Error != "" {
			t.Fatalf("item %d: unexpected error %s", i, item.Error)
		}
		if got := item.Palette.Strings(); len(got) != 1 || got[0] != want {
			t.Errorf("item %d: got %v, want [%s]", i, got, want)
		}
	}
}

func TestExtractPaletteBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ExtractPaletteBatch(ctx, NewImageCache(), []string{"/a.png", "/b.png"}, DefaultPaletteOptions(), 0)
	if err == nil {
		t.Error("ExtractPaletteBatch should fail on a cancelled context")
	}
}
