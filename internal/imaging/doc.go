// Package imaging provides the image side of the palette MCP server: loading
// and caching image files, sampling colors, and turning images into palettes
// with the median cut quantizer in package mmcq.
//
// Palettes can be extracted from a decoded image (optionally cropped to a
// Region and downsized) or from a raw RGBA buffer, and then used to find the
// nearest palette color, remap an image to palette colors, render a swatch,
// or drive image/gif encoding through Quantizer.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Palette extraction keeps no
// shared state, so ExtractPaletteBatch runs one extraction per goroutine, and
// a PaletteResult may be read from several goroutines once returned.
//
// # Color Representation
//
// Colors are returned in multiple formats for flexibility:
//   - Hex: 6-character format "#RRGGBB" (alpha excluded)
//   - CSS: "rgb(R,G,B)"
//   - RGB: 8-bit components (0-255)
//   - RGBA: 8-bit components with alpha (0-255)
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Coordinates outside image bounds
//   - Invalid region specifications (x1 >= x2 or y1 >= y2)
//   - Pixel buffers that are empty or not a whole number of RGBA pixels
//   - File I/O and decoding errors during image loading
//
// An image whose pixels are all transparent, or all white with IgnoreWhite,
// is not an error: its palette is simply empty.
package imaging
