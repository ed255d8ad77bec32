package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ironsheep/badge-verify/internal/badge"
	"github.com/ironsheep/badge-verify/internal/detection"
	"github.com/ironsheep/badge-verify/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "badge_verify").
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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Badge Verification
	case "badge_verify":
		return s.handleBadgeVerify(args)
	case "badge_check_circle":
		return s.handleBadgeCheckCircle(args)
	case "badge_average_color":
		return s.handleBadgeAverageColor(args)

	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	e := &MCPError{
		Code:    code,
		Message: message,
	}
	if data != "" {
		e.Data = data
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   e,
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return fmt.Errorf("missing arguments")
	}
	return json.Unmarshal(args, v)
}

// === Badge Verification Handlers ===

type badgeVerifyArgs struct {
	Path           string   `json:"path"`
	Tolerance      *float64 `json:"tolerance"`
	AnalyzeResized *bool    `json:"analyze_resized"`
}

// badgeVerifyResult mirrors badge.Result for the wire; the image itself is
// never sent back.
type badgeVerifyResult struct {
	Size imaging.DimensionsResult `json:"size"`
	*badge.Result
}

func (s *Server) handleBadgeVerify(args json.RawMessage) (interface{}, error) {
	var a badgeVerifyArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}

	opts := s.defaults
	if a.Tolerance != nil {
		opts.Tolerance = *a.Tolerance
	}
	if a.AnalyzeResized != nil {
		opts.AnalyzeResized = *a.AnalyzeResized
	}

	v, err := s.verifier(opts)
	if err != nil {
		return nil, err
	}
	defer s.cache.Evict(a.Path)
	res, err := v.Verify(context.Background(), a.Path)
	if err != nil {
		return nil, err
	}
	return &badgeVerifyResult{
		Size:   imaging.DimensionsResult{Width: res.Width, Height: res.Height},
		Result: res,
	}, nil
}

func (s *Server) verifier(opts badge.Options) (*badge.Verifier, error) {
	r, err := imaging.NewResizer(s.resizer)
	if err != nil {
		return nil, err
	}
	return badge.New(s.cache, r, opts)
}

type badgeCheckCircleArgs struct {
	Path      string   `json:"path"`
	Tolerance *float64 `json:"tolerance"`
}

func (s *Server) handleBadgeCheckCircle(args json.RawMessage) (interface{}, error) {
	var a badgeCheckCircleArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	tolerance := s.defaults.Tolerance
	if a.Tolerance != nil {
		tolerance = *a.Tolerance
	}
	if err := detection.ValidateTolerance(tolerance); err != nil {
		return nil, err
	}

	defer s.cache.Evict(a.Path)
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	report := detection.MeasureCircle(imaging.NewGrid(img), tolerance)
	return &report, nil
}

type pathArgs struct {
	Path string `json:"path"`
}

// averageColorResult is the happy color verdict with the average it was based on.
type averageColorResult struct {
	HSL            imaging.HSLColor     `json:"hsl"`
	Hex            string               `json:"hex"`
	HasHappyColors bool                 `json:"has_happy_colors"`
	HappyRange     detection.HappyRange `json:"happy_range"`
}

func (s *Server) handleBadgeAverageColor(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	defer s.cache.Evict(a.Path)
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	happy, avg, err := detection.CheckHappyColors(imaging.NewGrid(img), s.defaults.HappyRange)
	if err != nil {
		return nil, err
	}
	return &averageColorResult{
		HSL:            avg,
		Hex:            avg.Hex(),
		HasHappyColors: happy,
		HappyRange:     s.defaults.HappyRange,
	}, nil
}

// === Basic Image Information Handlers ===

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}
