package imaging

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultBatchConcurrency bounds parallel extractions when no limit is given.
const DefaultBatchConcurrency = 4

// BatchItem is the outcome for one image of a batch.
type BatchItem struct {
	Path    string         `json:"path"`
	Palette *PaletteResult `json:"palette,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// ExtractPaletteBatch extracts the palette of every image in paths, running
// up to concurrency extractions at a time. Each extraction builds its own
// histogram.
//
// Per-image failures are recorded in the matching BatchItem and do not stop
// the batch. The returned error is non-nil only if ctx ends first.
func ExtractPaletteBatch(ctx context.Context, cache *ImageCache, paths []string, opts PaletteOptions, concurrency int) ([]BatchItem, error) {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}

	items := make([]BatchItem, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, path := range paths {
		items[i].Path = path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := cache.Load(path)
			if err != nil {
				items[i].Error = err.Error()
				return nil
			}
			p, err := ExtractPaletteFromImage(img, opts)
			if err != nil {
				items[i].Error = err.Error()
				return nil
			}
			items[i].Palette = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}
