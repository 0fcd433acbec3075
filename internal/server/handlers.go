package server

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/ironsheep/image-segment-mcp/internal/logger"
	"github.com/ironsheep/image-segment-mcp/internal/raster"
	"github.com/ironsheep/image-segment-mcp/internal/report"
	"github.com/ironsheep/image-segment-mcp/internal/segment"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_segment").
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
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	return s.result(req.ID, map[string]interface{}{
		"content": []map[string]interface{}{
			{
				"type": "text",
				"text": mustMarshalJSON(result),
			},
		},
	})
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads rasters from cache as needed
//  4. Calls the appropriate raster/segment/report function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_unload":
		return s.handleImageUnload(args)

	// Segmentation
	case "image_segment":
		return s.handleImageSegment(args)
	case "image_segment_regions":
		return s.handleImageSegmentRegions(args)
	case "image_segment_outline":
		return s.handleImageSegmentOutline(args)

	// Transforms
	case "image_mirror":
		return s.handleImageMirror(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: jsonRPCVersion,
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
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

// DimensionsResult contains the size of an image in pixels.
type DimensionsResult struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return raster.LoadInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	r, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return &DimensionsResult{Rows: r.Rows(), Cols: r.Cols()}, nil
}

// UnloadResult reports how many decoded images were dropped from the cache.
type UnloadResult struct {
	Evicted int `json:"evicted"`
	Cached  int `json:"cached"`
}

// handleImageUnload drops one cached image, or all of them when no path is
// given, so that the next call decodes the file again.
func (s *Server) handleImageUnload(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	res := &UnloadResult{}
	if a.Path == "" {
		res.Evicted = s.cache.Clear()
	} else if s.cache.Evict(a.Path) {
		res.Evicted = 1
	}
	res.Cached = s.cache.Len()

	if logger.DebugEnabled() {
		log.Printf("Unloaded %d cached image(s), %d remain", res.Evicted, res.Cached)
	}
	return res, nil
}

// === Segmentation Handlers ===

type segmentArgs struct {
	Path          string  `json:"path"`
	Threshold     int     `json:"threshold"`
	NeighborOrder string  `json:"neighbor_order"`
	BlurSigma     float64 `json:"blur_sigma"`
	MaxDimension  int     `json:"max_dimension"`
}

type imageSegmentArgs struct {
	segmentArgs
	IncludeImage bool `json:"include_image"`
	Top          int  `json:"top"`
}

type imageSegmentRegionsArgs struct {
	segmentArgs
	Count int `json:"count"`
}

type imageSegmentOutlineArgs struct {
	segmentArgs
	OutlineColor string `json:"outline_color"`
}

// SegmentResult is returned by image_segment.
type SegmentResult struct {
	*report.Summary

	// ElapsedMs is the wall time of the segmentation pass.
	ElapsedMs int64 `json:"elapsed_ms"`

	// ImageBase64 holds the segmented image as PNG when include_image is set.
	ImageBase64 string `json:"image_base64,omitempty"`
}

// RegionsResult is returned by image_segment_regions.
type RegionsResult struct {
	RegionCount int                    `json:"region_count"`
	Regions     []report.RegionSummary `json:"regions"`
}

// segment loads the image named by a, applies any preprocessing and runs a
// segmentation pass with the requested grower settings.
func (s *Server) segment(a segmentArgs) (*segment.Result, time.Duration, error) {
	if a.Threshold == 0 {
		a.Threshold = segment.DefaultThreshold
	}
	order := segment.DefaultOrder
	if a.NeighborOrder != "" {
		var err error
		if order, err = segment.ParseOrder(a.NeighborOrder); err != nil {
			return nil, 0, err
		}
	}
	if a.BlurSigma < 0 || a.MaxDimension < 0 {
		return nil, 0, fmt.Errorf("blur_sigma and max_dimension must not be negative")
	}

	cached, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, 0, err
	}

	// The cached raster is shared, so preprocessing works on a new one.
	var src raster.Reader = cached
	opts := raster.PrepareOptions{MaxDimension: a.MaxDimension, BlurSigma: a.BlurSigma}
	if opts != (raster.PrepareOptions{}) {
		src = raster.Prepare(cached.Image(), opts)
	}

	start := time.Now()
	res, err := segment.New(segment.Grower{Threshold: a.Threshold, Order: order}).Segment(src)
	if err != nil {
		return nil, 0, err
	}
	elapsed := time.Since(start)

	if logger.DebugEnabled() {
		log.Printf("Segmented %s: %d regions in %s", a.Path, res.RegionCount(), elapsed)
	}
	return res, elapsed, nil
}

func (s *Server) handleImageSegment(args json.RawMessage) (interface{}, error) {
	var a imageSegmentArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	res, elapsed, err := s.segment(a.segmentArgs)
	if err != nil {
		return nil, err
	}

	summary, err := report.Summarize(res, a.Top)
	if err != nil {
		return nil, err
	}
	out := &SegmentResult{Summary: summary, ElapsedMs: elapsed.Milliseconds()}

	if a.IncludeImage {
		if out.ImageBase64, err = raster.EncodeBase64PNG(res.Output); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *Server) handleImageSegmentRegions(args json.RawMessage) (interface{}, error) {
	var a imageSegmentRegionsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 20
	}
	res, _, err := s.segment(a.segmentArgs)
	if err != nil {
		return nil, err
	}
	return &RegionsResult{
		RegionCount: res.RegionCount(),
		Regions:     report.LargestRegions(res, a.Count),
	}, nil
}

// OutlineResult is returned by image_segment_outline.
type OutlineResult struct {
	Rows        int    `json:"rows"`
	Cols        int    `json:"cols"`
	RegionCount int    `json:"region_count"`
	ImageBase64 string `json:"image_base64"`
}

func (s *Server) handleImageSegmentOutline(args json.RawMessage) (interface{}, error) {
	var a imageSegmentOutlineArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	lineColor := segment.DefaultOutlineColor
	if a.OutlineColor != "" {
		var err error
		if lineColor, err = raster.ParseHex(a.OutlineColor); err != nil {
			return nil, err
		}
	}
	res, _, err := s.segment(a.segmentArgs)
	if err != nil {
		return nil, err
	}

	outlined, err := segment.Outline(res, lineColor)
	if err != nil {
		return nil, err
	}
	data, err := raster.EncodeBase64PNG(outlined)
	if err != nil {
		return nil, err
	}
	return &OutlineResult{
		Rows:        outlined.Rows(),
		Cols:        outlined.Cols(),
		RegionCount: res.RegionCount(),
		ImageBase64: data,
	}, nil
}

// === Transform Handlers ===

// MirrorResult is returned by image_mirror.
type MirrorResult struct {
	Rows        int    `json:"rows"`
	Cols        int    `json:"cols"`
	ImageBase64 string `json:"image_base64"`
}

func (s *Server) handleImageMirror(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	r, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	mirrored := r.Mirror()
	data, err := raster.EncodeBase64PNG(mirrored)
	if err != nil {
		return nil, err
	}
	return &MirrorResult{Rows: mirrored.Rows(), Cols: mirrored.Cols(), ImageBase64: data}, nil
}
