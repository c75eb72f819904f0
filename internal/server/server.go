package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/ironsheep/palette-tools-mcp/internal/imaging"
)

const (
	serverName      = "palette-tools-mcp"
	serverVersion   = "0.2.0"
	protocolVersion = "2024-11-05"
)

// Config holds runtime settings read from the environment.
type Config struct {
	// Debug enables verbose request logging.
	Debug bool

	// BatchConcurrency bounds parallel extractions in palette_extract_batch.
	BatchConcurrency int

	// ExtractTimeout bounds a single palette tool call.
	ExtractTimeout time.Duration
}

// DefaultExtractTimeout is used when PALETTE_MCP_EXTRACT_TIMEOUT is unset.
const DefaultExtractTimeout = time.Minute

// DefaultConfig returns the settings used when no environment is set.
func DefaultConfig() Config {
	return Config{
		BatchConcurrency: imaging.DefaultBatchConcurrency,
		ExtractTimeout:   DefaultExtractTimeout,
	}
}

// ConfigFromEnv reads PALETTE_MCP_LOG_LEVEL, PALETTE_MCP_BATCH_CONCURRENCY and
// PALETTE_MCP_EXTRACT_TIMEOUT. Unparseable values fall back to the defaults
// with a log message.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.Debug = os.Getenv("PALETTE_MCP_LOG_LEVEL") == "debug"

	if v := os.Getenv("PALETTE_MCP_BATCH_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			log.Printf("Ignoring PALETTE_MCP_BATCH_CONCURRENCY=%q: want a positive integer", v)
		} else {
			cfg.BatchConcurrency = n
		}
	}

	if v := os.Getenv("PALETTE_MCP_EXTRACT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			log.Printf("Ignoring PALETTE_MCP_EXTRACT_TIMEOUT=%q: want a positive duration", v)
		} else {
			cfg.ExtractTimeout = d
		}
	}
	return cfg
}

// Server handles MCP protocol communication
type Server struct {
	cache  *imaging.ImageCache
	config Config
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a server with DefaultConfig.
func New() *Server {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a server with the given settings.
func NewWithConfig(cfg Config) *Server {
	if cfg.BatchConcurrency < 1 {
		cfg.BatchConcurrency = imaging.DefaultBatchConcurrency
	}
	if cfg.ExtractTimeout <= 0 {
		cfg.ExtractTimeout = DefaultExtractTimeout
	}
	return &Server{
		cache:  imaging.NewImageCache(),
		config: cfg,
	}
}

// Run serves requests from stdin and writes responses to stdout.
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve reads newline-delimited JSON-RPC requests from r until EOF and writes
// one response per line to w. Malformed lines are logged and skipped.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// Pixel buffers arrive base64-encoded, so allow large lines.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 64*1024*1024)

	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Printf("Failed to parse request: %v", err)
			continue
		}
		if s.config.Debug {
			log.Printf("Request %v: %s", req.ID, req.Method)
		}

		resp := s.handleRequest(&req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				log.Printf("Failed to encode response: %v", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return s.errorResponse(req.ID, -32601, fmt.Sprintf("Method not found: %s", req.Method), "")
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": protocolVersion,
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    serverName,
				"version": serverVersion,
			},
		},
	}
}

// handleToolsList returns the tool table.
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
