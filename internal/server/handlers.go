package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"log"
	"os"

	"github.com/ironsheep/raster-tools-mcp/internal/edit"
	"github.com/ironsheep/raster-tools-mcp/internal/radial"
	"github.com/ironsheep/raster-tools-mcp/internal/raster"
	"github.com/ironsheep/raster-tools-mcp/internal/view"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "raster_load", "edit_paste").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// Notices reported when an operation had nothing to act on.
const (
	noticeEmptySelection = "selection is empty; nothing to do"
	noticeEmptyClipboard = "clipboard is empty; nothing to paste"
	noticeNothingToUndo  = "nothing to undo"
	noticeOutsideImage   = "point is outside the image; nothing to report"
)

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
	if len(params.Arguments) == 0 {
		params.Arguments = json.RawMessage("{}")
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		if s.cfg.Debug() {
			log.Printf("tool %s failed: %v", params.Name, err)
		}
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
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Calls the editing session or the raster/radial packages
//  4. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Image
	case "raster_load":
		return s.handleRasterLoad(args)
	case "raster_info":
		return s.handleRasterInfo(args)

	// View
	case "view_set_viewport":
		return s.handleViewSetViewport(args)
	case "view_zoom_in":
		s.session.ZoomIn()
		return s.session.ViewState(), nil
	case "view_zoom_out":
		s.session.ZoomOut()
		return s.session.ViewState(), nil
	case "view_zoom_fit":
		if err := s.session.ZoomFit(); err != nil {
			return nil, err
		}
		return s.session.ViewState(), nil
	case "view_wheel":
		return s.handleViewWheel(args)
	case "view_render":
		return s.session.Render()

	// Selection
	case "pointer_down":
		return s.handlePointer(args, s.session.PointerDown)
	case "pointer_move":
		return s.handlePointer(args, func(p view.Point) error {
			s.session.PointerMove(p)
			return nil
		})
	case "pointer_up":
		return s.handlePointer(args, func(p view.Point) error {
			s.session.PointerUp(p)
			return nil
		})
	case "selection_get":
		return s.selectionResult(), nil
	case "selection_set":
		return s.handleSelectionSet(args)

	// Edit
	case "edit_copy":
		return s.softResult(s.session.Copy())
	case "edit_cut":
		return s.softResult(s.session.Cut())
	case "edit_paste":
		return s.handleEditPaste(args)
	case "edit_crop":
		return s.softResult(s.session.Crop())
	case "edit_rotate":
		return s.handleEditRotate(args)
	case "edit_flip":
		return s.handleEditFlip(args)
	case "edit_resize":
		return s.handleEditResize(args)
	case "edit_undo":
		return s.handleEditUndo()

	// Filters
	case "filter_list":
		return map[string]interface{}{"filters": s.session.Filters().Names()}, nil
	case "filter_apply":
		return s.handleFilterApply(args)

	// Analysis
	case "pixel_info":
		return s.handlePixelInfo(args)
	case "histogram":
		return s.session.Histogram()
	case "radial_average":
		return s.handleRadialAverage(args)
	case "radial_sweep":
		return s.handleRadialSweep(args)
	case "radial_export":
		return s.handleRadialExport(args)
	case "radial_find_center":
		return s.handleRadialFindCenter(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
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

// editResult reports the session after an edit.
type editResult struct {
	Changed      bool   `json:"changed"`
	Notice       string `json:"notice,omitempty"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	HistoryDepth int    `json:"history_depth"`
}

func (s *Server) result(changed bool, notice string) *editResult {
	r := &editResult{
		Changed:      changed,
		Notice:       notice,
		HistoryDepth: s.session.HistoryLen(),
	}
	if img := s.session.Image(); img != nil {
		r.Width, r.Height = img.Width(), img.Height()
	}
	if notice != "" && s.cfg.Debug() {
		log.Printf("notice: %s", notice)
	}
	return r
}

// softResult turns a (done, err) pair from a selection-driven edit into a
// result. Not done means the selection was empty.
func (s *Server) softResult(done bool, err error) (interface{}, error) {
	if err != nil {
		return nil, err
	}
	if !done {
		return s.result(false, noticeEmptySelection), nil
	}
	return s.result(true, ""), nil
}

// === Image Handlers ===

type rasterLoadArgs struct {
	Path         string `json:"path"`
	HeaderOffset *int   `json:"header_offset"`
	Width        *int   `json:"width"`
	Height       *int   `json:"height"`
	PixelStride  *int   `json:"pixel_stride"`
}

// layout applies the request's overrides to the configured layout.
func (a rasterLoadArgs) layout(base raster.Layout) raster.Layout {
	if a.HeaderOffset != nil {
		base.HeaderOffset = *a.HeaderOffset
	}
	if a.Width != nil {
		base.Width = *a.Width
	}
	if a.Height != nil {
		base.Height = *a.Height
	}
	if a.PixelStride != nil {
		base.PixelStride = *a.PixelStride
	}
	return base
}

func (s *Server) handleRasterLoad(args json.RawMessage) (interface{}, error) {
	var a rasterLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	// Reloading a path re-reads the file.
	s.cache.Evict(a.Path)

	layout := a.layout(s.cfg.Layout)
	info, err := raster.LoadInfo(s.cache, a.Path, layout)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path, layout)
	if err != nil {
		return nil, err
	}
	if err := s.session.Open(img); err != nil {
		return nil, err
	}
	s.source = a.Path

	return map[string]interface{}{
		"info": info,
		"view": s.session.ViewState(),
	}, nil
}

type rasterInfoArgs struct {
	Path string `json:"path"`
}

// sessionInfo describes the session's current image.
type sessionInfo struct {
	Source       string          `json:"source,omitempty"`
	Image        *raster.Info    `json:"image"`
	HistoryDepth int             `json:"history_depth"`
	Clipboard    *view.Size      `json:"clipboard,omitempty"`
	Selection    selectionResult `json:"selection"`
	Viewport     view.Size       `json:"viewport"`
	View         view.State      `json:"view"`
}

func (s *Server) handleRasterInfo(args json.RawMessage) (interface{}, error) {
	var a rasterInfoArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path != "" {
		return raster.LoadInfo(s.cache, a.Path, s.cfg.Layout)
	}

	img := s.session.Image()
	if img == nil {
		return nil, edit.ErrNoImage
	}
	info := &sessionInfo{
		Source:       s.source,
		Image:        raster.Describe(img),
		HistoryDepth: s.session.HistoryLen(),
		Selection:    s.selectionResult(),
		Viewport:     s.session.Viewport(),
		View:         s.session.ViewState(),
	}
	if size, ok := s.session.ClipboardSize(); ok {
		info.Clipboard = &size
	}
	return info, nil
}

// === View Handlers ===

type viewportArgs struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s *Server) handleViewSetViewport(args json.RawMessage) (interface{}, error) {
	var a viewportArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := s.session.SetViewport(view.Size{Width: a.Width, Height: a.Height}); err != nil {
		return nil, err
	}
	return s.session.ViewState(), nil
}

type wheelArgs struct {
	Delta int `json:"delta"`
}

func (s *Server) handleViewWheel(args json.RawMessage) (interface{}, error) {
	var a wheelArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	s.session.Wheel(a.Delta)
	return s.session.ViewState(), nil
}

// === Selection Handlers ===

type pointerArgs struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// selectionResult reports the selection in image space. X2 and Y2 are
// exclusive.
type selectionResult struct {
	State string `json:"state"`
	Empty bool   `json:"empty"`
	X1    int    `json:"x1"`
	Y1    int    `json:"y1"`
	X2    int    `json:"x2"`
	Y2    int    `json:"y2"`
}

func (s *Server) selectionResult() selectionResult {
	r := s.session.Selection()
	return selectionResult{
		State: s.session.SelectState().String(),
		Empty: r.Empty(),
		X1:    r.Min.X,
		Y1:    r.Min.Y,
		X2:    r.Max.X,
		Y2:    r.Max.Y,
	}
}

func (s *Server) handlePointer(args json.RawMessage, fn func(view.Point) error) (interface{}, error) {
	var a pointerArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := fn(view.Point{X: a.X, Y: a.Y}); err != nil {
		return nil, err
	}
	return s.selectionResult(), nil
}

type selectionSetArgs struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

func (s *Server) handleSelectionSet(args json.RawMessage) (interface{}, error) {
	var a selectionSetArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := s.session.Select(image.Rect(a.X1, a.Y1, a.X2, a.Y2)); err != nil {
		return nil, err
	}
	return s.selectionResult(), nil
}

// === Edit Handlers ===

type pasteArgs struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Mode string `json:"mode"`
}

func (s *Server) handleEditPaste(args json.RawMessage) (interface{}, error) {
	var a pasteArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Mode == "" {
		a.Mode = "OR"
	}
	mode, err := edit.ParseBlendMode(a.Mode)
	if err != nil {
		return nil, err
	}

	done, err := s.session.Paste(image.Pt(a.X, a.Y), mode)
	if err != nil {
		return nil, err
	}
	if !done {
		return s.result(false, noticeEmptyClipboard), nil
	}
	return s.result(true, ""), nil
}

type rotateArgs struct {
	Direction string `json:"direction"`
}

func (s *Server) handleEditRotate(args json.RawMessage) (interface{}, error) {
	var a rotateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Direction == "" {
		a.Direction = "cw"
	}
	r, err := edit.ParseRotation(a.Direction)
	if err != nil {
		return nil, err
	}
	if err := s.session.Rotate(r); err != nil {
		return nil, err
	}
	return s.result(true, ""), nil
}

type flipArgs struct {
	Axis string `json:"axis"`
}

func (s *Server) handleEditFlip(args json.RawMessage) (interface{}, error) {
	var a flipArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	axis, err := edit.ParseAxis(a.Axis)
	if err != nil {
		return nil, err
	}
	if err := s.session.Flip(axis); err != nil {
		return nil, err
	}
	return s.result(true, ""), nil
}

type resizeArgs struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s *Server) handleEditResize(args json.RawMessage) (interface{}, error) {
	var a resizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := s.session.Resize(a.Width, a.Height); err != nil {
		return nil, err
	}
	return s.result(true, ""), nil
}

func (s *Server) handleEditUndo() (interface{}, error) {
	if !s.session.Undo() {
		return s.result(false, noticeNothingToUndo), nil
	}
	return s.result(true, ""), nil
}

// === Filter Handlers ===

type filterApplyArgs struct {
	Name string `json:"name"`
}

func (s *Server) handleFilterApply(args json.RawMessage) (interface{}, error) {
	var a filterApplyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := s.session.ApplyFilter(a.Name); err != nil {
		return nil, err
	}
	return s.result(true, ""), nil
}

// === Analysis Handlers ===

type pixelInfoArgs struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Space string  `json:"space"`
}

func (s *Server) handlePixelInfo(args json.RawMessage) (interface{}, error) {
	var a pixelInfoArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if s.session.Image() == nil {
		return nil, edit.ErrNoImage
	}

	var p image.Point
	switch a.Space {
	case "", "image":
		p = view.Point{X: a.X, Y: a.Y}.Pixel()
	case "viewport":
		p = s.session.ToImage(view.Point{X: a.X, Y: a.Y})
	default:
		return nil, fmt.Errorf("unknown coordinate space %q (want image or viewport)", a.Space)
	}

	info, ok := s.session.PixelInfo(p)
	if !ok {
		if s.cfg.Debug() {
			log.Printf("notice: pixel (%d, %d) outside %dx%d image",
				p.X, p.Y, s.session.Image().Width(), s.session.Image().Height())
		}
		return &pixelOutside{X: p.X, Y: p.Y, Inside: false, Notice: noticeOutsideImage}, nil
	}
	return &pixelInside{PixelInfo: info, Inside: true}, nil
}

type pixelInside struct {
	*raster.PixelInfo
	Inside bool `json:"inside"`
}

type pixelOutside struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Inside bool   `json:"inside"`
	Notice string `json:"notice"`
}

type radialAverageArgs struct {
	CX float64 `json:"cx"`
	CY float64 `json:"cy"`
	R  int     `json:"r"`
}

type radialAverageResult struct {
	Center radial.Center `json:"center"`
	Point  radial.Point  `json:"point"`
	Angles int           `json:"angles"`
	Notice string        `json:"notice,omitempty"`
}

func (s *Server) handleRadialAverage(args json.RawMessage) (interface{}, error) {
	var a radialAverageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img := s.session.Image()
	if img == nil {
		return nil, edit.ErrNoImage
	}

	c := radial.Center{X: a.CX, Y: a.CY}
	avg, n := radial.CircularAverage(img, c, a.R)
	res := &radialAverageResult{
		Center: c,
		Point:  radial.Point{R: a.R, Avg: avg, Samples: n},
	}
	if a.R > 0 && a.R <= radial.MaxRadius {
		res.Angles = radial.SampleCount(a.R)
	}
	if n == 0 {
		res.Notice = "no pixels of the circle lie inside the image"
	}
	return res, nil
}

type radialSweepArgs struct {
	CX   float64 `json:"cx"`
	CY   float64 `json:"cy"`
	RMin int     `json:"r_min"`
	RMax int     `json:"r_max"`
	Step int     `json:"step"`
}

func (a *radialSweepArgs) defaults() {
	if a.Step == 0 {
		a.Step = 1
	}
}

func (s *Server) sweep(a radialSweepArgs) (radial.Profile, error) {
	img := s.session.Image()
	if img == nil {
		return nil, edit.ErrNoImage
	}
	return radial.Sweep(img, radial.Center{X: a.CX, Y: a.CY}, a.RMin, a.RMax, a.Step)
}

func (s *Server) handleRadialSweep(args json.RawMessage) (interface{}, error) {
	var a radialSweepArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	a.defaults()
	profile, err := s.sweep(a)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"center": radial.Center{X: a.CX, Y: a.CY},
		"points": profile,
		"count":  len(profile),
		"valid":  len(profile.Valid()),
	}, nil
}

type radialExportArgs struct {
	radialSweepArgs
	OutputPath string `json:"output_path"`
}

func (s *Server) handleRadialExport(args json.RawMessage) (interface{}, error) {
	var a radialExportArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	a.defaults()
	profile, err := s.sweep(a.radialSweepArgs)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := radial.WriteCSV(&buf, profile); err != nil {
		return nil, err
	}

	if a.OutputPath == "" {
		return map[string]interface{}{
			"rows": len(profile),
			"csv":  buf.String(),
		}, nil
	}
	if err := os.WriteFile(a.OutputPath, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write profile: %w", err)
	}
	return map[string]interface{}{
		"rows": len(profile),
		"path": a.OutputPath,
	}, nil
}

type findCenterArgs struct {
	RMin int `json:"r_min"`
	RMax int `json:"r_max"`
}

func (s *Server) handleRadialFindCenter(args json.RawMessage) (interface{}, error) {
	var a findCenterArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img := s.session.Image()
	if img == nil {
		return nil, edit.ErrNoImage
	}
	return radial.FindCenter(img, a.RMin, a.RMax)
}
