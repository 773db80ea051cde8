// Package server implements the MCP (Model Context Protocol) server for raw
// raster viewing, editing and radial analysis.
//
// This package provides a JSON-RPC 2.0 server that drives one editing
// session (see package edit) through MCP tools. A client opens a raw raster
// file, moves the view, drags out selections with pointer events, edits the
// image with undo, and measures radial intensity profiles.
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
// Image:
//   - raster_load: Decode a raw BGRA file and open it
//   - raster_info: Describe the current image or a file
//
// View:
//   - view_set_viewport, view_zoom_in, view_zoom_out, view_zoom_fit,
//     view_wheel: Zoom state
//   - view_render: Visible part of the image as PNG
//
// Selection:
//   - pointer_down, pointer_move, pointer_up: Rubber-band selection in
//     viewport coordinates
//   - selection_get, selection_set: Selection in image coordinates
//
// Edit (undoable through edit_undo):
//   - edit_copy, edit_cut, edit_paste: Clipboard with AND/OR/XOR/BLEND
//   - edit_crop, edit_rotate, edit_flip, edit_resize: Geometry
//   - filter_list, filter_apply: Registered filters
//
// Analysis:
//   - pixel_info: Intensity and display color of one pixel
//   - histogram: 256-bin intensity histogram
//   - radial_average, radial_sweep, radial_export: Radial profiles
//   - radial_find_center: Center estimate for ring patterns
//
// # Soft Conditions
//
// Edits with nothing to act on (empty selection, empty clipboard, empty
// history) are not errors. They return "changed": false with a "notice"
// string and leave the session untouched.
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
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := server.New(cfg).Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
