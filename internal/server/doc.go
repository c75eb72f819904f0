// Package server implements the MCP (Model Context Protocol) server for color
// palette tools.
//
// This package provides a JSON-RPC 2.0 server that exposes palette extraction
// through the MCP protocol, so MCP clients can ask for the dominant colors of
// an image, match colors against a palette and render palette previews.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Color Operations:
//   - image_sample_color: Get color at pixel
//   - image_dominant_colors: Most common colors with coverage
//
// Palette Operations:
//   - palette_extract: Median cut palette of an image file
//   - palette_extract_buffer: Palette of raw RGBA bytes or an inline image
//   - palette_extract_batch: Palettes of several files in parallel
//   - palette_nearest_color: Closest palette color to a query color
//   - palette_remap: Redraw an image with palette colors only
//   - palette_swatch: Render the palette as color bands
//
// Every palette tool accepts color_count (1-20, default 5), quality (1-10,
// default 10) and ignore_white (default true).
//
// # Configuration
//
// ConfigFromEnv reads:
//   - PALETTE_MCP_LOG_LEVEL: "debug" logs each request and tool failure
//   - PALETTE_MCP_BATCH_CONCURRENCY: parallel extractions per batch (default 4)
//   - PALETTE_MCP_EXTRACT_TIMEOUT: Go duration bounding buffer and batch calls (default 1m)
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Images are cached
// by path and reused across multiple tool calls, avoiding redundant disk I/O.
// The cache persists for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.NewWithConfig(server.ConfigFromEnv())
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
