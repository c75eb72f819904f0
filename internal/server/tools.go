package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func regionProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": description,
		"properties": map[string]interface{}{
			"x1": map[string]interface{}{"type": "integer"},
			"y1": map[string]interface{}{"type": "integer"},
			"x2": map[string]interface{}{"type": "integer"},
			"y2": map[string]interface{}{"type": "integer"},
		},
		"required": []string{"x1", "y1", "x2", "y2"},
	}
}

// paletteProperties returns the schema shared by every palette_* tool.
func paletteProperties() map[string]interface{} {
	return map[string]interface{}{
		"color_count": map[string]interface{}{
			"type":        "integer",
			"description": "Maximum number of palette colors (1-20). Default 5",
			"default":     5,
			"minimum":     1,
			"maximum":     20,
		},
		"quality": map[string]interface{}{
			"type":        "integer",
			"description": "Sampling stride (1-10). 1 reads every pixel, 10 every tenth. Default 10",
			"default":     10,
			"minimum":     1,
			"maximum":     10,
		},
		"ignore_white": map[string]interface{}{
			"type":        "boolean",
			"description": "Skip near-white pixels (all channels above 250). Default true",
			"default":     true,
		},
	}
}

func imagePaletteProperties() map[string]interface{} {
	props := paletteProperties()
	props["path"] = pathProperty()
	props["max_dimension"] = map[string]interface{}{
		"type":        "integer",
		"description": "Downsize images larger than this before sampling. 0 disables. Default 0",
		"default":     0,
	}
	props["region"] = regionProperty("Optional region to extract from (x2, y2 exclusive)")
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	extractBatchProps := paletteProperties()
	extractBatchProps["paths"] = map[string]interface{}{
		"type":        "array",
		"items":       map[string]interface{}{"type": "string"},
		"description": "Absolute paths of the images to process",
	}
	extractBatchProps["max_dimension"] = imagePaletteProperties()["max_dimension"]

	bufferProps := paletteProperties()
	bufferProps["pixels"] = map[string]interface{}{
		"type":        "string",
		"description": "Base64-encoded RGBA bytes, 4 per pixel",
	}
	bufferProps["image"] = map[string]interface{}{
		"type":        "string",
		"description": "Base64-encoded image file (PNG, JPEG, GIF, BMP, TIFF, WebP). Used when pixels is empty",
	}

	nearestProps := imagePaletteProperties()
	nearestProps["color"] = map[string]interface{}{
		"type":        "string",
		"description": "Query color as #RRGGBB, #RGB or rgb(r,g,b)",
	}

	swatchProps := imagePaletteProperties()
	swatchProps["width"] = map[string]interface{}{
		"type":        "integer",
		"description": "Swatch width in pixels. Default 64 per color",
	}
	swatchProps["height"] = map[string]interface{}{
		"type":        "integer",
		"description": "Swatch height in pixels. Default 64",
	}
	swatchProps["labels"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Write each color's hex code on its band. Default false",
		"default":     false,
	}

	compareProps := paletteProperties()
	compareProps["path"] = map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the first image file",
	}
	compareProps["path2"] = map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the second image file. Defaults to path",
	}
	compareProps["region1"] = regionProperty("Optional region of the first image (x2, y2 exclusive)")
	compareProps["region2"] = regionProperty("Optional region of the second image (x2, y2 exclusive)")
	compareProps["tolerance"] = map[string]interface{}{
		"type":        "integer",
		"description": "Distance |dr|+|dg|+|db| under which two colors match. Default 30",
		"default":     30,
	}

	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. Supports PNG, JPEG, GIF, BMP, TIFF and WebP.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Color Operations
		{
			Name:        "image_sample_color",
			Description: "Get the exact color at a specific pixel coordinate. Returns hex, RGB, RGBA and HSL.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "image_dominant_colors",
			Description: "Find the most common colors in an image or region, with the share of pixels each one covers.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of colors to return. Default 5",
						"default":     5,
					},
					"region": regionProperty("Optional region to analyze (x2, y2 exclusive)"),
				},
				"required": []string{"path"},
			},
		},

		// Palette Operations
		{
			Name:        "palette_extract",
			Description: "Extract a palette of dominant colors from an image using modified median cut quantization. Colors are ordered most dominant first.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": imagePaletteProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "palette_extract_buffer",
			Description: "Extract a palette from a raw RGBA pixel buffer or an inline encoded image. Fully transparent pixels are skipped.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": bufferProps,
			},
		},
		{
			Name:        "palette_extract_batch",
			Description: "Extract palettes from several images concurrently. Failures are reported per image.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": extractBatchProps,
				"required":   []string{"paths"},
			},
		},
		{
			Name:        "palette_nearest_color",
			Description: "Extract an image palette and return the palette color closest to a query color.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": nearestProps,
				"required":   []string{"path", "color"},
			},
		},
		{
			Name:        "palette_remap",
			Description: "Extract an image palette and redraw the image using only palette colors. Returns a base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": imagePaletteProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "palette_swatch",
			Description: "Render an image palette as a strip of color bands, most dominant first. Returns a base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": swatchProps,
				"required":   []string{"path"},
			},
		},
		{
			Name:        "palette_compare",
			Description: "Compare the palettes of two images or two regions of one image. Reports each color's nearest match and an overall similarity score.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": compareProps,
				"required":   []string{"path"},
			},
		},
	}
}
