package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func prop(typ, description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        typ,
		"description": description,
	}
}

func objectSchema(props map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func noArgs() map[string]interface{} {
	return objectSchema(map[string]interface{}{})
}

func pointProps(space string) map[string]interface{} {
	return map[string]interface{}{
		"x": prop("number", "X coordinate in "+space+" space"),
		"y": prop("number", "Y coordinate in "+space+" space"),
	}
}

func sweepProps() map[string]interface{} {
	return map[string]interface{}{
		"cx":    prop("number", "Center X in image space (fractional allowed)"),
		"cy":    prop("number", "Center Y in image space (fractional allowed)"),
		"r_min": prop("integer", "Smallest radius in pixels"),
		"r_max": prop("integer", "Largest radius in pixels (inclusive when reachable by step)"),
		"step": map[string]interface{}{
			"type":        "integer",
			"description": "Radius increment in pixels. Default 1",
			"default":     1,
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	exportProps := sweepProps()
	exportProps["output_path"] = prop("string", "Optional file to write the CSV to; when omitted the CSV text is returned")

	return []Tool{
		// Image
		{
			Name:        "raster_load",
			Description: "Decode a raw BGRA raster file into a grayscale image and open it as the current image. Resets undo history and clipboard. Layout fields override the configured defaults.",
			InputSchema: objectSchema(map[string]interface{}{
				"path":          prop("string", "Absolute path to the raw raster file"),
				"header_offset": prop("integer", "Bytes to skip before pixel data (default 3072)"),
				"width":         prop("integer", "Image width in pixels (default 2082)"),
				"height":        prop("integer", "Image height in pixels (default 2217)"),
				"pixel_stride":  prop("integer", "Bytes per pixel group, at least 4 (default 4)"),
			}, "path"),
		},
		{
			Name:        "raster_info",
			Description: "Describe the current image: size, history depth, clipboard, selection and view. With a path, describe that file without opening it.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": prop("string", "Optional raw raster file to describe instead of the current image"),
			}),
		},

		// View
		{
			Name:        "view_set_viewport",
			Description: "Set the viewport size. In fit mode the zoom is recomputed.",
			InputSchema: objectSchema(map[string]interface{}{
				"width":  prop("integer", "Viewport width in pixels"),
				"height": prop("integer", "Viewport height in pixels"),
			}, "width", "height"),
		},
		{
			Name:        "view_zoom_in",
			Description: "Multiply the zoom by 1.2 (never above 1000) and leave fit mode.",
			InputSchema: noArgs(),
		},
		{
			Name:        "view_zoom_out",
			Description: "Divide the zoom by 1.2 (never below 0.01) and leave fit mode.",
			InputSchema: noArgs(),
		},
		{
			Name:        "view_zoom_fit",
			Description: "Fit the whole image in the viewport and enter fit mode.",
			InputSchema: noArgs(),
		},
		{
			Name:        "view_wheel",
			Description: "Apply one mouse-wheel notch: positive zooms in one step, negative zooms out one step.",
			InputSchema: objectSchema(map[string]interface{}{
				"delta": prop("integer", "Wheel rotation; only the sign matters"),
			}, "delta"),
		},
		{
			Name:        "view_render",
			Description: "Render the visible part of the current image at the current zoom as base64 PNG.",
			InputSchema: noArgs(),
		},

		// Selection
		{
			Name:        "pointer_down",
			Description: "Press the pointer at a viewport point, starting a selection drag.",
			InputSchema: objectSchema(pointProps("viewport"), "x", "y"),
		},
		{
			Name:        "pointer_move",
			Description: "Move the pointer during a drag, updating the live selection.",
			InputSchema: objectSchema(pointProps("viewport"), "x", "y"),
		},
		{
			Name:        "pointer_up",
			Description: "Release the pointer, finalizing the selection.",
			InputSchema: objectSchema(pointProps("viewport"), "x", "y"),
		},
		{
			Name:        "selection_get",
			Description: "Return the selection state and rectangle in image space (x2, y2 exclusive).",
			InputSchema: noArgs(),
		},
		{
			Name:        "selection_set",
			Description: "Set the selection rectangle directly in image space; it is clamped to the image.",
			InputSchema: objectSchema(map[string]interface{}{
				"x1": prop("integer", "Left edge X coordinate (0-based)"),
				"y1": prop("integer", "Top edge Y coordinate (0-based)"),
				"x2": prop("integer", "Right edge X coordinate (exclusive)"),
				"y2": prop("integer", "Bottom edge Y coordinate (exclusive)"),
			}, "x1", "y1", "x2", "y2"),
		},

		// Edit
		{
			Name:        "edit_copy",
			Description: "Copy the selected region to the clipboard. No-op with a notice when the selection is empty.",
			InputSchema: noArgs(),
		},
		{
			Name:        "edit_cut",
			Description: "Copy the selected region, then fill it with 255. Undoable.",
			InputSchema: noArgs(),
		},
		{
			Name:        "edit_paste",
			Description: "Composite the clipboard onto the image at an image-space point. Pixels falling outside the image are dropped. Undoable.",
			InputSchema: objectSchema(map[string]interface{}{
				"x": prop("integer", "Destination X of the clipboard's top-left corner"),
				"y": prop("integer", "Destination Y of the clipboard's top-left corner"),
				"mode": map[string]interface{}{
					"type":        "string",
					"description": "Blend mode. Default OR",
					"enum":        []string{"AND", "OR", "XOR", "BLEND"},
					"default":     "OR",
				},
			}, "x", "y"),
		},
		{
			Name:        "edit_crop",
			Description: "Replace the image with the selected region. Undoable.",
			InputSchema: noArgs(),
		},
		{
			Name:        "edit_rotate",
			Description: "Rotate the image by a quarter turn or half turn. Undoable.",
			InputSchema: objectSchema(map[string]interface{}{
				"direction": map[string]interface{}{
					"type":        "string",
					"description": "Rotation. Default cw",
					"enum":        []string{"cw", "ccw", "180"},
					"default":     "cw",
				},
			}),
		},
		{
			Name:        "edit_flip",
			Description: "Mirror the image. Undoable.",
			InputSchema: objectSchema(map[string]interface{}{
				"axis": map[string]interface{}{
					"type":        "string",
					"description": "Mirror axis",
					"enum":        []string{"horizontal", "vertical"},
				},
			}, "axis"),
		},
		{
			Name:        "edit_resize",
			Description: "Resample the image to a new size (Lanczos). A zero side preserves the aspect ratio. Undoable.",
			InputSchema: objectSchema(map[string]interface{}{
				"width":  prop("integer", "New width in pixels, or 0"),
				"height": prop("integer", "New height in pixels, or 0"),
			}, "width", "height"),
		},
		{
			Name:        "edit_undo",
			Description: "Restore the previous image. There is no redo.",
			InputSchema: noArgs(),
		},

		// Filters
		{
			Name:        "filter_list",
			Description: "List the registered image filters.",
			InputSchema: noArgs(),
		},
		{
			Name:        "filter_apply",
			Description: "Run a registered filter on the current image. A failing filter leaves the image untouched. Undoable.",
			InputSchema: objectSchema(map[string]interface{}{
				"name": prop("string", "Filter name from filter_list"),
			}, "name"),
		},

		// Analysis
		{
			Name:        "pixel_info",
			Description: "Report the intensity of one pixel with its hex and HSL display color. A point outside the image returns inside=false with a notice.",
			InputSchema: objectSchema(map[string]interface{}{
				"x": prop("number", "X coordinate"),
				"y": prop("number", "Y coordinate"),
				"space": map[string]interface{}{
					"type":        "string",
					"description": "Coordinate space of x and y. Default image",
					"enum":        []string{"image", "viewport"},
					"default":     "image",
				},
			}, "x", "y"),
		},
		{
			Name:        "histogram",
			Description: "Return the 256-bin intensity histogram of the current image.",
			InputSchema: noArgs(),
		},
		{
			Name:        "radial_average",
			Description: "Average intensity over the distinct pixels on one circle. Returns null avg when no pixel of the circle is inside the image.",
			InputSchema: objectSchema(map[string]interface{}{
				"cx": prop("number", "Center X in image space (fractional allowed)"),
				"cy": prop("number", "Center Y in image space (fractional allowed)"),
				"r":  prop("integer", "Radius in pixels"),
			}, "cx", "cy", "r"),
		},
		{
			Name:        "radial_sweep",
			Description: "Radial intensity profile: the circular average at every radius from r_min to r_max by step.",
			InputSchema: objectSchema(sweepProps(), "cx", "cy", "r_min", "r_max"),
		},
		{
			Name:        "radial_export",
			Description: "Compute a radial profile and export it as CSV with columns R, avg, samples. Empty avg marks radii without samples.",
			InputSchema: objectSchema(exportProps, "cx", "cy", "r_min", "r_max"),
		},
		{
			Name:        "radial_find_center",
			Description: "Estimate the common center of concentric rings (edge detection plus center voting) for use as cx, cy in radial tools. Cost grows with the radius range.",
			InputSchema: objectSchema(map[string]interface{}{
				"r_min": prop("integer", "Smallest ring radius to consider, at least 1"),
				"r_max": prop("integer", "Largest ring radius to consider; capped at the image diagonal"),
			}, "r_min", "r_max"),
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
