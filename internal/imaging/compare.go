package imaging

import (
	"fmt"
	"math"

	"github.com/ironsheep/palette-tools-mcp/internal/mmcq"
)

// maxManhattan is the largest possible |dr|+|dg|+|db|.
const maxManhattan = 3 * 255

// DefaultMatchTolerance is the Manhattan distance under which two palette
// colors count as a match.
const DefaultMatchTolerance = 30

// ColorMatch pairs a palette color with its nearest color in another palette.
type ColorMatch struct {
	Color    ColorResult `json:"color"`
	Nearest  ColorResult `json:"nearest"`
	Distance int         `json:"distance"`
	Matched  bool        `json:"matched"`
}

// PaletteComparison contains the result of comparing two palettes.
type PaletteComparison struct {
	// SimilarityScore is 1 for identical palettes and falls toward 0 as the
	// population-weighted distance between nearest colors grows.
	SimilarityScore float64 `json:"similarity_score"`

	// MatchedColors counts first-palette colors within Tolerance of a
	// second-palette color.
	MatchedColors int `json:"matched_colors"`

	// AverageDistance is the population-weighted Manhattan distance from the
	// first palette to the second, averaged with the reverse direction.
	AverageDistance float64 `json:"average_distance"`

	Tolerance int          `json:"tolerance"`
	Matches   []ColorMatch `json:"matches"`
}

// ComparePalettes matches every color of a to its nearest color in b.
//
// # Errors
//
//   - Returns error if either palette is empty
func ComparePalettes(a, b *PaletteResult, tolerance int) (*PaletteComparison, error) {
	if len(a.Colors) == 0 || len(b.Colors) == 0 {
		return nil, fmt.Errorf("cannot compare an empty palette")
	}
	if tolerance <= 0 {
		tolerance = DefaultMatchTolerance
	}

	matches := make([]ColorMatch, len(a.Colors))
	matched := 0
	for i, c := range a.Colors {
		query := paletteColor(c)
		nearest, _ := b.ColorMap().NearestColor(query)
		d := query.Distance(nearest)
		matches[i] = ColorMatch{
			Color:    c.ColorResult,
			Nearest:  describeColor(nearest),
			Distance: d,
			Matched:  d <= tolerance,
		}
		if matches[i].Matched {
			matched++
		}
	}

	avg := (weightedDistance(a, b) + weightedDistance(b, a)) / 2

	return &PaletteComparison{
		SimilarityScore: math.Round((1-avg/maxManhattan)*1000) / 1000,
		MatchedColors:   matched,
		AverageDistance: math.Round(avg*100) / 100,
		Tolerance:       tolerance,
		Matches:         matches,
	}, nil
}

// weightedDistance averages the distance from each color of from to its
// nearest color in to, weighted by population.
func weightedDistance(from, to *PaletteResult) float64 {
	var sum, weight float64
	for _, c := range from.Colors {
		query := paletteColor(c)
		nearest, _ := to.ColorMap().NearestColor(query)
		w := float64(c.Population)
		sum += w * float64(query.Distance(nearest))
		weight += w
	}
	if weight == 0 {
		return 0
	}
	return sum / weight
}

func paletteColor(e PaletteEntry) mmcq.Color {
	return mmcq.Color{R: e.RGB.R, G: e.RGB.G, B: e.RGB.B}
}
