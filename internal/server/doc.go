// Package server implements the MCP (Model Context Protocol) server that exposes
// the crop and resize engine to a host process.
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
// Core:
//   - crop_and_resize_image: RGBA buffer in, resized and centre-cropped RGBA buffer out
//   - crop_plan: The scale and crop geometry for a call, without pixels
//
// Host helpers:
//   - crop_and_resize_file: Decode a file to RGBA and run the core on it
//   - crop_preview: PNG of a scaled file with the crop window outlined
//   - image_load: Decode a file and report its size
//   - image_list: List image files in a directory
//
// Pixel buffers travel as standard base64 inside the JSON arguments and
// results. Only the host helpers ever read files; the core tools operate on
// the bytes they are given.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: ToolErrorData with the error kind (InputSizeMismatch,
//     InvalidDimensions, CropOutOfBounds, InvalidArgument or Internal) and
//     a detail string naming the offending values
//
// None of the kinds are transient; resending the same request fails the same
// way.
//
// # Usage
//
//	cfg, err := config.FromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv := server.New(cfg, nil)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
