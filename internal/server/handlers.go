package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"

	"github.com/ironsheep/palette-tools-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "palette_extract").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		if s.config.Debug {
			log.Printf("Tool %s failed: %v", params.Name, err)
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the appropriate imaging function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Color Operations
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_dominant_colors":
		return s.handleImageDominantColors(args)

	// Palette Operations
	case "palette_extract":
		return s.handlePaletteExtract(args)
	case "palette_extract_buffer":
		return s.handlePaletteExtractBuffer(args)
	case "palette_extract_batch":
		return s.handlePaletteExtractBatch(args)
	case "palette_nearest_color":
		return s.handlePaletteNearestColor(args)
	case "palette_remap":
		return s.handlePaletteRemap(args)
	case "palette_swatch":
		return s.handlePaletteSwatch(args)
	case "palette_compare":
		return s.handlePaletteCompare(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	resp := &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
		},
	}
	if data != "" {
		resp.Error.Data = data
	}
	return resp
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Color Operation Handlers ===

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

type imageDominantColorsArgs struct {
	Path   string          `json:"path"`
	Count  int             `json:"count"`
	Region *imaging.Region `json:"region,omitempty"`
}

func (s *Server) handleImageDominantColors(args json.RawMessage) (interface{}, error) {
	var a imageDominantColorsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 5
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.DominantColors(img, a.Count, a.Region)
}

// === Palette Operation Handlers ===

// paletteArgs holds the options shared by the palette_* tools. Zero values
// take the defaults of imaging.DefaultPaletteOptions.
type paletteArgs struct {
	ColorCount   int             `json:"color_count"`
	Quality      int             `json:"quality"`
	IgnoreWhite  *bool           `json:"ignore_white"`
	MaxDimension int             `json:"max_dimension"`
	Region       *imaging.Region `json:"region,omitempty"`
}

func (a paletteArgs) options() imaging.PaletteOptions {
	opts := imaging.DefaultPaletteOptions()
	if a.ColorCount != 0 {
		opts.ColorCount = a.ColorCount
	}
	if a.Quality != 0 {
		opts.Quality = a.Quality
	}
	if a.IgnoreWhite != nil {
		opts.IgnoreWhite = *a.IgnoreWhite
	}
	opts.MaxDimension = a.MaxDimension
	opts.Region = a.Region
	return opts.Normalize()
}

type paletteImageArgs struct {
	Path string `json:"path"`
	paletteArgs
}

// extractFromPath loads path and extracts its palette with a's options.
func (s *Server) extractFromPath(a paletteImageArgs) (*imaging.PaletteResult, error) {
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.ExtractPaletteFromImage(img, a.options())
}

func (s *Server) handlePaletteExtract(args json.RawMessage) (interface{}, error) {
	var a paletteImageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.extractFromPath(a)
}

type paletteExtractBufferArgs struct {
	Pixels string `json:"pixels"`
	Image  string `json:"image"`
	paletteArgs
}

func (s *Server) handlePaletteExtractBuffer(args json.RawMessage) (interface{}, error) {
	var a paletteExtractBufferArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	opts := a.options()
	opts.Region = nil
	opts.MaxDimension = 0

	var pix []byte
	switch {
	case a.Pixels != "":
		raw, err := base64.StdEncoding.DecodeString(a.Pixels)
		if err != nil {
			return nil, fmt.Errorf("failed to decode pixels: %w", err)
		}
		pix = raw
	case a.Image != "":
		img, _, err := imaging.DecodeBase64(a.Image)
		if err != nil {
			return nil, err
		}
		pix = imaging.RGBAPixels(img)
	default:
		return nil, fmt.Errorf("one of pixels or image is required")
	}
	if err := imaging.ValidateBuffer(pix); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.config.ExtractTimeout)
	defer cancel()
	return imaging.ExtractPaletteAsync(pix, opts).Wait(ctx)
}

type paletteExtractBatchArgs struct {
	Paths []string `json:"paths"`
	paletteArgs
}

// BatchResult is the palette_extract_batch response.
type BatchResult struct {
	Items     []imaging.BatchItem `json:"items"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
}

func (s *Server) handlePaletteExtractBatch(args json.RawMessage) (interface{}, error) {
	var a paletteExtractBatchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Paths) == 0 {
		return nil, fmt.Errorf("paths must not be empty")
	}
	opts := a.options()
	opts.Region = nil

	ctx, cancel := context.WithTimeout(context.Background(), s.config.ExtractTimeout)
	defer cancel()
	items, err := imaging.ExtractPaletteBatch(ctx, s.cache, a.Paths, opts, s.config.BatchConcurrency)
	if err != nil {
		return nil, fmt.Errorf("batch extraction interrupted: %w", err)
	}

	result := &BatchResult{Items: items}
	for _, item := range items {
		if item.Error != "" {
			result.Failed++
		} else {
			result.Succeeded++
		}
	}
	return result, nil
}

type paletteNearestColorArgs struct {
	Color string `json:"color"`
	paletteImageArgs
}

func (s *Server) handlePaletteNearestColor(args json.RawMessage) (interface{}, error) {
	var a paletteNearestColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	query, err := imaging.ParseColor(a.Color)
	if err != nil {
		return nil, err
	}
	p, err := s.extractFromPath(a.paletteImageArgs)
	if err != nil {
		return nil, err
	}
	return imaging.NearestPaletteColor(p, query)
}

func (s *Server) handlePaletteRemap(args json.RawMessage) (interface{}, error) {
	var a paletteImageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	p, err := imaging.ExtractPaletteFromImage(img, a.options())
	if err != nil {
		return nil, err
	}
	return imaging.RemapToPalette(img, p)
}

type paletteSwatchArgs struct {
	Width  int  `json:"width"`
	Height int  `json:"height"`
	Labels bool `json:"labels"`
	paletteImageArgs
}

func (s *Server) handlePaletteSwatch(args json.RawMessage) (interface{}, error) {
	var a paletteSwatchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	p, err := s.extractFromPath(a.paletteImageArgs)
	if err != nil {
		return nil, err
	}
	return imaging.RenderSwatch(p, a.Width, a.Height, a.Labels)
}

type paletteCompareArgs struct {
	Path      string          `json:"path"`
	Path2     string          `json:"path2"`
	Region1   *imaging.Region `json:"region1,omitempty"`
	Region2   *imaging.Region `json:"region2,omitempty"`
	Tolerance int             `json:"tolerance"`
	paletteArgs
}

func (s *Server) handlePaletteCompare(args json.RawMessage) (interface{}, error) {
	var a paletteCompareArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path2 == "" {
		a.Path2 = a.Path
	}

	opts := a.options()
	extract := func(path string, region *imaging.Region) (*imaging.PaletteResult, error) {
		img, err := s.cache.Load(path)
		if err != nil {
			return nil, err
		}
		o := opts
		o.Region = region
		return imaging.ExtractPaletteFromImage(img, o)
	}

	p1, err := extract(a.Path, a.Region1)
	if err != nil {
		return nil, fmt.Errorf("first palette: %w", err)
	}
	p2, err := extract(a.Path2, a.Region2)
	if err != nil {
		return nil, fmt.Errorf("second palette: %w", err)
	}
	return imaging.ComparePalettes(p1, p2, a.Tolerance)
}
