package radial

import (
	"errors"
	"math"

	"github.com/ironsheep/raster-tools-mcp/internal/filter"
	"github.com/ironsheep/raster-tools-mcp/internal/raster"
)

// voteStep is the angular spacing, in degrees, of the center votes cast by
// each edge pixel.
const voteStep = 10

// ErrNoCenter is returned when no edge pixel votes for any center.
var ErrNoCenter = errors.New("no circular structure found")

// CenterEstimate is the most likely common center of the circular
// structures in an image.
type CenterEstimate struct {
	Center     Center `json:"center"`
	Votes      int    `json:"votes"`
	EdgePixels int    `json:"edge_pixels"`
}

// FindCenter estimates the center of concentric circular structures with
// radii between rMin and rMax, as a starting point for Sweep. rMax is
// lowered to the image diagonal, since no larger ring can cross the image
// around a center inside it.
//
// # Algorithm
//
// Edges are found with filter.Edges. Every edge pixel then votes, at
// voteStep-degree intervals and for every radius in the range, for the
// pixel that would be the circle center. All radii share one accumulator so
// concentric rings reinforce the same center. The pixel with the most votes
// wins; ties go to the first in row-major order.
//
// Time complexity is O(edges × (rMax-rMin+1) × 360/voteStep).
func FindCenter(img *raster.Buffer, rMin, rMax int) (*CenterEstimate, error) {
	if rMin < 1 || rMax < rMin {
		return nil, &SweepRangeError{Min: rMin, Max: rMax, Step: 1}
	}
	if img.Empty() {
		return nil, ErrNoCenter
	}

	w, h := img.Width(), img.Height()
	diag := int(math.Ceil(math.Hypot(float64(w), float64(h))))
	rMax = min(rMax, max(rMin, diag))
	edges := filter.Edges(img, filter.DefaultEdgeLow, filter.DefaultEdgeHigh)

	n := 360 / voteStep
	cos := make([]float64, n)
	sin := make([]float64, n)
	for i := range cos {
		rad := float64(i*voteStep) * math.Pi / 180
		cos[i], sin[i] = math.Cos(rad), math.Sin(rad)
	}

	acc := make([]int, w*h)
	edgeCount := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if edges.Pix[y*edges.Stride+x] == 0 {
				continue
			}
			edgeCount++
			for r := rMin; r <= rMax; r++ {
				rf := float64(r)
				for i := 0; i < n; i++ {
					cx := x - int(math.Round(rf*cos[i]))
					cy := y - int(math.Round(rf*sin[i]))
					if cx >= 0 && cx < w && cy >= 0 && cy < h {
						acc[cy*w+cx]++
					}
				}
			}
		}
	}

	best := -1
	for i, v := range acc {
		if v > 0 && (best < 0 || v > acc[best]) {
			best = i
		}
	}
	if best < 0 {
		return nil, ErrNoCenter
	}

	return &CenterEstimate{
		Center:     Center{X: float64(best % w), Y: float64(best / w)},
		Votes:      acc[best],
		EdgePixels: edgeCount,
	}, nil
}
