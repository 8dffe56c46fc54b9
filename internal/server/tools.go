package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func intProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"minimum":     1,
		"description": description,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Core
		{
			Name: "crop_and_resize_image",
			Description: "Resize a raw RGBA pixel buffer keeping its aspect ratio, then cut the centred region of the requested size. " +
				"Input and output are base64-encoded, row-major, 4 bytes per pixel (R, G, B, A). No PNG/JPEG decoding is done.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"rgba_base64": map[string]interface{}{
						"type":        "string",
						"description": "Base64 of input_width*input_height*4 RGBA bytes",
					},
					"input_width":   intProp("Width of the input buffer in pixels"),
					"input_height":  intProp("Height of the input buffer in pixels"),
					"output_width":  intProp("Width of the result in pixels"),
					"output_height": intProp("Height of the result in pixels"),
				},
				"required": []string{"rgba_base64", "input_width", "input_height", "output_width", "output_height"},
			},
		},
		{
			Name:        "crop_plan",
			Description: "Compute the intermediate size and crop rectangle crop_and_resize_image would use, without processing pixels. Fails the same way the real call would.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"input_width":   intProp("Width of the input in pixels"),
					"input_height":  intProp("Height of the input in pixels"),
					"output_width":  intProp("Width of the result in pixels"),
					"output_height": intProp("Height of the result in pixels"),
				},
				"required": []string{"input_width", "input_height", "output_width", "output_height"},
			},
		},

		// Host helpers
		{
			Name:        "crop_and_resize_file",
			Description: "Decode an image file to RGBA, then run crop_and_resize_image on it. Returns the raw RGBA result as base64.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to a PNG, JPEG, GIF, BMP or TIFF file",
					},
					"output_width":  intProp("Width of the result in pixels"),
					"output_height": intProp("Height of the result in pixels"),
				},
				"required": []string{"path", "output_width", "output_height"},
			},
		},
		{
			Name: "crop_preview",
			Description: "Scale an image file the way crop_and_resize_file would and return it as PNG with the crop window outlined. " +
				"Unlike the real call this succeeds when the window does not fit; the canvas grows to show where it lands and fits is false.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"output_width":  intProp("Width of the result in pixels"),
					"output_height": intProp("Height of the result in pixels"),
					"outline_color": map[string]interface{}{
						"type":        "string",
						"description": "Outline colour as #rrggbb",
						"default":     "#ff0000",
					},
				},
				"required": []string{"path", "output_width", "output_height"},
			},
		},
		{
			Name:        "image_load",
			Description: "Decode an image file and report its dimensions and the size of its RGBA buffer.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_list",
			Description: "List image files in a directory.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"dir": map[string]interface{}{
						"type":        "string",
						"description": "Directory to list. Defaults to the server's configured image directory.",
					},
				},
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
