// Package server implements the MCP (Model Context Protocol) server for color
// region segmentation.
//
// The server exposes the segmentation pipeline as JSON-RPC 2.0 tools so that
// MCP clients can segment images and inspect the resulting regions.
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
//   - image_load: Load image and get rows, columns, format and file size
//   - image_dimensions: Get rows and columns
//   - image_unload: Drop one cached image, or all of them
//
// Segmentation:
//   - image_segment: Segment the image and report region statistics,
//     optionally returning the segmented image
//   - image_segment_regions: List the largest regions
//   - image_segment_outline: Draw region boundaries over the segmented image
//
// Transforms:
//   - image_mirror: Mirror the image left to right
//
// # Image Caching
//
// Decoded rasters are cached by path and reused across tool calls. The cache
// persists until image_unload drops an entry. Segmentation never writes
// to a cached raster; preprocessing produces a new one.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
