package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathProperty is the schema shared by every tool's image path argument.
var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the image file",
}

// segmentationProperties returns the schema of the arguments that tune a
// segmentation run.
func segmentationProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": pathProperty,
		"threshold": map[string]interface{}{
			"type":        "integer",
			"description": "Exclusive color distance limit (|dR|+|dG|+|dB|) for a pixel to join a region. Default 100",
			"default":     100,
		},
		"neighbor_order": map[string]interface{}{
			"type":        "string",
			"description": "Comma separated neighbor visiting order. Default \"down,right,up,left\"",
			"default":     "down,right,up,left",
		},
		"blur_sigma": map[string]interface{}{
			"type":        "number",
			"description": "Optional Gaussian blur applied before segmentation. Default 0 (off)",
			"default":     0,
		},
		"max_dimension": map[string]interface{}{
			"type":        "integer",
			"description": "Optional downscale so no side exceeds this many pixels. Default 0 (off)",
			"default":     0,
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	segmentProps := segmentationProperties()
	segmentProps["include_image"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Return the segmented image as base64-encoded PNG. Default false",
		"default":     false,
	}
	segmentProps["top"] = map[string]interface{}{
		"type":        "integer",
		"description": "Number of largest regions to include in the summary. Default 5",
		"default":     5,
	}

	regionProps := segmentationProperties()
	regionProps["count"] = map[string]interface{}{
		"type":        "integer",
		"description": "Maximum number of regions to return, largest first. Default 20",
		"default":     20,
	}

	outlineProps := segmentationProperties()
	outlineProps["outline_color"] = map[string]interface{}{
		"type":        "string",
		"description": "Boundary color as hex (#RRGGBB). Default \"#ff0000\"",
		"default":     "#ff0000",
	}

	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and file size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the number of pixel rows and columns of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_unload",
			Description: "Drop a cached image so the file is read again on next use. Without a path, drop every cached image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path of the image to drop. Omit to drop all",
					},
				},
			},
		},

		// Segmentation
		{
			Name:        "image_segment",
			Description: "Segment an image into connected regions of similar color, replace each region with its average color, and return region statistics.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": segmentProps,
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_segment_regions",
			Description: "Segment an image and list its largest regions with seed pixel, size and average color.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": regionProps,
				"required":   []string{"path"},
			},
		},

		{
			Name:        "image_segment_outline",
			Description: "Segment an image and return it as base64-encoded PNG with region boundaries drawn over the average colors.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": outlineProps,
				"required":   []string{"path"},
			},
		},

		// Transforms
		{
			Name:        "image_mirror",
			Description: "Return the image mirrored left to right as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return s.result(req.ID, map[string]interface{}{
		"tools": GetToolDefinitions(),
	})
}
