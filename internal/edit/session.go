package edit

import (
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/raster-tools-mcp/internal/filter"
	"github.com/ironsheep/raster-tools-mcp/internal/raster"
	"github.com/ironsheep/raster-tools-mcp/internal/view"
)

// ErrNoImage is returned by operations that need a current image when none is open.
var ErrNoImage = errors.New("no image open")

// EventKind identifies a session state change.
type EventKind int

const (
	// ImageChanged fires whenever the current image is replaced.
	ImageChanged EventKind = iota
	// SelectionChanged fires when the selection rectangle changes.
	SelectionChanged
	// ViewChanged fires when the zoom factor, fit mode or viewport changes.
	ViewChanged
)

func (k EventKind) String() string {
	switch k {
	case ImageChanged:
		return "image"
	case SelectionChanged:
		return "selection"
	case ViewChanged:
		return "view"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers after a state change.
type Event struct {
	Kind EventKind
}

// Config holds session construction parameters.
type Config struct {
	// HistoryCapacity bounds the undo history; 0 selects DefaultHistoryCapacity.
	HistoryCapacity int

	// Viewport is the initial viewport size.
	Viewport view.Size

	// Filters is the plugin registry owned by the session. Nil selects an
	// empty registry.
	Filters *filter.Registry
}

// Session owns the current image of one editing session.
//
// Every operation that changes pixels builds a new buffer and hands it to
// SetImage, which records the previous image for Undo. The current image is
// only exposed as an immutable *raster.Buffer, so nothing outside the
// session can bypass history.
//
// Session is not safe for concurrent use; all calls must come from one
// owner, typically the event loop of a presentation layer.
type Session struct {
	current   *raster.Buffer
	history   *History
	clipboard Clipboard
	selector  Selector
	view      *view.Transform
	viewport  view.Size
	filters   *filter.Registry
	listeners []func(Event)
}

// NewSession creates a session with no image.
func NewSession(cfg Config) *Session {
	filters := cfg.Filters
	if filters == nil {
		filters = filter.NewRegistry()
	}
	return &Session{
		history:  NewHistory(cfg.HistoryCapacity),
		view:     view.NewTransform(),
		viewport: cfg.Viewport,
		filters:  filters,
	}
}

// Subscribe registers fn to receive state change events.
func (s *Session) Subscribe(fn func(Event)) {
	s.listeners = append(s.listeners, fn)
}

func (s *Session) emit(kind EventKind) {
	for _, fn := range s.listeners {
		fn(Event{Kind: kind})
	}
}

// Image returns the current image, or nil when none is open.
func (s *Session) Image() *raster.Buffer { return s.current }

// HistoryLen returns the number of undoable states.
func (s *Session) HistoryLen() int { return s.history.Len() }

// Filters returns the session's plugin registry.
func (s *Session) Filters() *filter.Registry { return s.filters }

// Open starts a fresh editing session on img: history, clipboard and
// selection are reset and img becomes the current image.
func (s *Session) Open(img *raster.Buffer) error {
	if img == nil {
		return errors.New("cannot open a nil image")
	}
	s.history.Clear()
	s.clipboard.Clear()
	s.current = nil
	return s.SetImage(img)
}

// SetImage replaces the current image, pushing the previous one onto the
// history (evicting the oldest entry when full), clears the selection and
// fits the new image to the viewport.
func (s *Session) SetImage(img *raster.Buffer) error {
	if img == nil {
		return errors.New("cannot set a nil image")
	}
	if s.current != nil {
		s.history.Push(s.current)
	}
	s.replace(img)
	return nil
}

// Undo restores the most recent past image. It returns false, changing
// nothing, when the history is empty.
func (s *Session) Undo() bool {
	prev, ok := s.history.Pop()
	if !ok {
		return false
	}
	s.replace(prev)
	return true
}

func (s *Session) replace(img *raster.Buffer) {
	s.current = img
	s.selector.Clear()
	s.fit()
	s.emit(ImageChanged)
	s.emit(SelectionChanged)
}

func (s *Session) fit() {
	if s.current == nil || s.viewport.Empty() {
		return
	}
	if err := s.view.ZoomFit(view.SizeOf(s.current), s.viewport); err == nil {
		s.emit(ViewChanged)
	}
}

// Close ends the session: the image, history and clipboard are dropped and
// every filter is unloaded.
func (s *Session) Close() {
	s.current = nil
	s.history.Clear()
	s.clipboard.Clear()
	s.selector.Clear()
	s.filters.Close()
}

// === View ===

// Viewport returns the viewport size.
func (s *Session) Viewport() view.Size { return s.viewport }

// SetViewport records a new viewport size. In fit mode the zoom factor is
// re-derived immediately.
func (s *Session) SetViewport(v view.Size) error {
	if v.Empty() {
		return fmt.Errorf("invalid viewport %dx%d", v.Width, v.Height)
	}
	s.viewport = v
	if s.current != nil {
		s.view.Sync(view.SizeOf(s.current), v)
	}
	s.emit(ViewChanged)
	return nil
}

// ZoomIn enlarges the view.
func (s *Session) ZoomIn() {
	s.view.ZoomIn()
	s.emit(ViewChanged)
}

// ZoomOut shrinks the view.
func (s *Session) ZoomOut() {
	s.view.ZoomOut()
	s.emit(ViewChanged)
}

// Wheel applies a mouse-wheel rotation to the zoom.
func (s *Session) Wheel(delta int) {
	if delta == 0 {
		return
	}
	s.view.Wheel(delta)
	s.emit(ViewChanged)
}

// ZoomFit fits the current image to the viewport.
func (s *Session) ZoomFit() error {
	if s.current == nil {
		return ErrNoImage
	}
	if err := s.view.ZoomFit(view.SizeOf(s.current), s.viewport); err != nil {
		return err
	}
	s.emit(ViewChanged)
	return nil
}

// ViewState reports the zoom state for the current image.
func (s *Session) ViewState() view.State {
	var size view.Size
	if s.current != nil {
		size = view.SizeOf(s.current)
		s.view.Sync(size, s.viewport)
	}
	return s.view.Snapshot(size)
}

// Render returns the displayed portion of the current image.
func (s *Session) Render() (*view.RenderResult, error) {
	if s.current == nil {
		return nil, ErrNoImage
	}
	return view.RenderPNG(s.current, s.view, s.viewport)
}

// ToImage maps a viewport point into image space using the zoom factor
// that applies to the viewport right now.
func (s *Session) ToImage(p view.Point) image.Point {
	if s.current == nil {
		return p.Pixel()
	}
	return s.view.ToImage(p, view.SizeOf(s.current), s.viewport).Pixel()
}

// === Selection ===

// PointerDown starts a selection drag at a viewport point.
func (s *Session) PointerDown(p view.Point) error {
	if s.current == nil {
		return ErrNoImage
	}
	s.selector.PointerDown(s.ToImage(p), s.current.Bounds())
	s.emit(SelectionChanged)
	return nil
}

// PointerMove updates the live selection. Moves outside a drag are ignored.
func (s *Session) PointerMove(p view.Point) {
	if s.current == nil {
		return
	}
	if s.selector.PointerMove(s.ToImage(p)) {
		s.emit(SelectionChanged)
	}
}

// PointerUp finalizes the selection. Releases outside a drag are ignored.
func (s *Session) PointerUp(p view.Point) {
	if s.current == nil {
		return
	}
	if s.selector.PointerUp(s.ToImage(p)) {
		s.emit(SelectionChanged)
	}
}

// SelectState returns the selection state machine's state.
func (s *Session) SelectState() SelectState { return s.selector.State() }

// Selection returns the current selection in image space.
func (s *Session) Selection() image.Rectangle { return s.selector.Selection() }

// Select sets the selection directly in image space, clamped to the image.
func (s *Session) Select(r image.Rectangle) error {
	if s.current == nil {
		return ErrNoImage
	}
	s.selector.Set(r, s.current.Bounds())
	s.emit(SelectionChanged)
	return nil
}

// === Clipboard ===

// Copy stores the selected region in the clipboard. It returns false when
// the selection is empty.
func (s *Session) Copy() (bool, error) {
	if s.current == nil {
		return false, ErrNoImage
	}
	return s.clipboard.Copy(s.current, s.selector.Selection()), nil
}

// Cut copies the selection, then fills it with MaxIntensity through
// SetImage. It returns false when the selection is empty.
func (s *Session) Cut() (bool, error) {
	ok, err := s.Copy()
	if err != nil || !ok {
		return ok, err
	}
	return true, s.SetImage(Fill(s.current, s.selector.Selection(), raster.MaxIntensity))
}

// Paste composites the clipboard at an image-space point. It returns false
// when the clipboard is empty.
func (s *Session) Paste(at image.Point, mode BlendMode) (bool, error) {
	if s.current == nil {
		return false, ErrNoImage
	}
	clip, ok := s.clipboard.Contents()
	if !ok {
		return false, nil
	}
	return true, s.SetImage(Paste(s.current, clip, at, mode))
}

// ClipboardSize returns the size of the clipboard contents, if any.
func (s *Session) ClipboardSize() (view.Size, bool) {
	clip, ok := s.clipboard.Contents()
	if !ok {
		return view.Size{}, false
	}
	return view.SizeOf(clip), true
}

// === Transforms ===

// Crop replaces the image with the selected region. It returns false when
// the selection is empty.
func (s *Session) Crop() (bool, error) {
	if s.current == nil {
		return false, ErrNoImage
	}
	out, ok := Crop(s.current, s.selector.Selection())
	if !ok {
		return false, nil
	}
	return true, s.SetImage(out)
}

// Rotate turns the image.
func (s *Session) Rotate(r Rotation) error {
	if s.current == nil {
		return ErrNoImage
	}
	return s.SetImage(Rotate(s.current, r))
}

// Flip mirrors the image.
func (s *Session) Flip(axis Axis) error {
	if s.current == nil {
		return ErrNoImage
	}
	return s.SetImage(Flip(s.current, axis))
}

// Resize scales the image.
func (s *Session) Resize(width, height int) error {
	if s.current == nil {
		return ErrNoImage
	}
	out, err := Resize(s.current, width, height)
	if err != nil {
		return err
	}
	return s.SetImage(out)
}

// ApplyFilter runs a registered filter on the image. A failing filter
// returns a *filter.FilterError and leaves the current image in place.
func (s *Session) ApplyFilter(name string) error {
	if s.current == nil {
		return ErrNoImage
	}
	out, err := s.filters.Apply(name, s.current)
	if err != nil {
		return err
	}
	return s.SetImage(out)
}

// === Queries ===

// PixelInfo reports the pixel at an image-space point. Out-of-bounds
// points and a missing image return false.
func (s *Session) PixelInfo(p image.Point) (*raster.PixelInfo, bool) {
	if s.current == nil {
		return nil, false
	}
	return raster.QueryPixel(s.current, p.X, p.Y)
}

// Histogram returns the intensity histogram of the current image.
func (s *Session) Histogram() (*raster.Histogram, error) {
	if s.current == nil {
		return nil, ErrNoImage
	}
	return raster.ComputeHistogram(s.current), nil
}
