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

func toleranceProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "number",
		"description": "Pixels of slack allowed beyond the measured radius. Default 5",
		"default":     5.0,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Badge Verification
		{
			Name:        "badge_verify",
			Description: "Verify a badge image: report its resized dimensions, whether all opaque pixels lie within a centered circle, and whether its average color is in the happy yellow band.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":      pathProperty(),
					"tolerance": toleranceProperty(),
					"analyze_resized": map[string]interface{}{
						"type":        "boolean",
						"description": "Run the checks on the resized copy instead of the original pixels. Default false",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "badge_check_circle",
			Description: "Check whether every non-transparent pixel lies within a circle centered on the image. Returns the measured radius and the first pixel outside it, if any.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":      pathProperty(),
					"tolerance": toleranceProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "badge_average_color",
			Description: "Compute the average HSL color of every pixel and classify it against the happy color band (hue 30-90, saturation 50-100, lightness 40-80).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and number of opaque pixels.",
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
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
