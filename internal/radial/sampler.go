package radial

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/ironsheep/raster-tools-mcp/internal/raster"
)

const (
	// MinSamples is the fewest angles sampled on any circle.
	MinSamples = 8
	// MaxRadius is the largest radius CircularAverage samples. Larger
	// circles report no samples.
	MaxRadius = 1 << 24
	// MaxSweepPoints bounds the length of a single profile.
	MaxSweepPoints = 1 << 20
)

// Center is a circle center in image space. Fractional centers are allowed.
type Center struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Point is one entry of a radial profile. Avg is NaN when no in-bounds
// pixel lies on the circle.
type Point struct {
	R       int     `json:"r"`
	Avg     float64 `json:"avg"`
	Samples int     `json:"samples"`
}

// MarshalJSON encodes a NaN average as null.
func (p Point) MarshalJSON() ([]byte, error) {
	var avg *float64
	if !math.IsNaN(p.Avg) {
		avg = &p.Avg
	}
	return json.Marshal(struct {
		R       int      `json:"r"`
		Avg     *float64 `json:"avg"`
		Samples int      `json:"samples"`
	}{p.R, avg, p.Samples})
}

// Profile is a sequence of points ordered by increasing radius. Radii
// without valid samples are kept with a NaN average so gaps stay visible.
type Profile []Point

// ErrInvalidSweepRange matches every *SweepRangeError via errors.Is.
var ErrInvalidSweepRange = errors.New("invalid sweep range")

// SweepRangeError reports sweep bounds that cannot produce a profile.
type SweepRangeError struct {
	Min, Max, Step int
}

func (e *SweepRangeError) Error() string {
	return fmt.Sprintf("invalid sweep range: min=%d max=%d step=%d (need step > 0, max >= min and at most %d points)",
		e.Min, e.Max, e.Step, MaxSweepPoints)
}

func (e *SweepRangeError) Is(target error) bool { return target == ErrInvalidSweepRange }

// SampleCount returns the number of angles sampled at radius r:
// max(MinSamples, round(2πr)). r must not exceed MaxRadius.
func SampleCount(r int) int {
	return max(MinSamples, int(math.Round(2*math.Pi*float64(r))))
}

// CircularAverage returns the mean intensity over the distinct pixels lying
// on the circle of radius r around c, and how many such pixels there were.
//
// The circle is sampled at SampleCount(r) evenly spaced angles; each sample
// is rounded to the nearest pixel. A pixel reached from several angles
// counts once, and pixels outside the image are discarded. The average is
// NaN with zero samples when r <= 0 or r > MaxRadius, when the circle lies
// entirely outside the image or encloses it, or when no sample lands inside.
//
// Only the angles whose arc crosses the image are visited, so the cost is
// bounded by the image size rather than by r.
func CircularAverage(img *raster.Buffer, c Center, r int) (float64, int) {
	if r <= 0 || r > MaxRadius || img.Empty() {
		return math.NaN(), 0
	}

	n := SampleCount(r)
	arcs := insideArcs(img, c, float64(r))
	if len(arcs) == 0 {
		return math.NaN(), 0
	}

	seen := make(map[image.Point]struct{}, min(n, img.Width()*img.Height()))
	var sum float64
	perRad := float64(n) / (2 * math.Pi)
	for _, a := range arcs {
		lo := max(0, int(math.Floor(a[0]*perRad))-1)
		hi := min(n-1, int(math.Ceil(a[1]*perRad))+1)
		for k := lo; k <= hi; k++ {
			theta := 2 * math.Pi * float64(k) / float64(n)
			p := image.Pt(
				int(math.Round(c.X+float64(r)*math.Cos(theta))),
				int(math.Round(c.Y+float64(r)*math.Sin(theta))),
			)
			if _, dup := seen[p]; dup {
				continue
			}
			v, ok := img.Intensity(p.X, p.Y)
			if !ok {
				continue
			}
			seen[p] = struct{}{}
			sum += float64(v)
		}
	}

	if len(seen) == 0 {
		return math.NaN(), 0
	}
	return sum / float64(len(seen)), len(seen)
}

// insideArcs returns the angle intervals, within [0, 2π], over which the
// circle passes through the pixel area of img. Samples outside these
// intervals round to pixels outside the image.
func insideArcs(img *raster.Buffer, c Center, r float64) [][2]float64 {
	left, right := -0.5, float64(img.Width())-0.5
	top, bottom := -0.5, float64(img.Height())-0.5

	cuts := []float64{0, 2 * math.Pi}
	addCut := func(theta float64) {
		if theta < 0 {
			theta += 2 * math.Pi
		}
		cuts = append(cuts, theta)
	}
	for _, x := range []float64{left, right} {
		if cos := (x - c.X) / r; math.Abs(cos) <= 1 {
			a := math.Acos(cos)
			addCut(a)
			addCut(-a)
		}
	}
	for _, y := range []float64{top, bottom} {
		if sin := (y - c.Y) / r; math.Abs(sin) <= 1 {
			a := math.Asin(sin)
			addCut(a)
			addCut(math.Pi - a)
		}
	}
	sort.Float64s(cuts)

	var arcs [][2]float64
	for i := 1; i < len(cuts); i++ {
		a, b := cuts[i-1], cuts[i]
		mid := (a + b) / 2
		x, y := c.X+r*math.Cos(mid), c.Y+r*math.Sin(mid)
		if x < left || x > right || y < top || y > bottom {
			continue
		}
		if n := len(arcs); n > 0 && arcs[n-1][1] == a {
			arcs[n-1][1] = b
			continue
		}
		arcs = append(arcs, [2]float64{a, b})
	}
	return arcs
}

// Sweep computes CircularAverage at rMin, rMin+step, ... up to and
// including rMax when the range divides evenly. The profile has exactly
// (rMax-rMin)/step + 1 points.
//
// It returns a *SweepRangeError when step <= 0, rMax < rMin, or the profile
// would exceed MaxSweepPoints.
func Sweep(img *raster.Buffer, c Center, rMin, rMax, step int) (Profile, error) {
	if step <= 0 || rMax < rMin {
		return nil, &SweepRangeError{Min: rMin, Max: rMax, Step: step}
	}
	// The difference is taken in uint64 so ranges spanning zero near the
	// int limits do not overflow.
	count := (uint64(rMax)-uint64(rMin))/uint64(step) + 1
	if count > MaxSweepPoints {
		return nil, &SweepRangeError{Min: rMin, Max: rMax, Step: step}
	}

	profile := make(Profile, 0, int(count))
	for i := 0; i < int(count); i++ {
		r := rMin + i*step
		avg, n := CircularAverage(img, c, r)
		profile = append(profile, Point{R: r, Avg: avg, Samples: n})
	}
	return profile, nil
}

// Valid returns the points with a defined average.
func (p Profile) Valid() Profile {
	out := make(Profile, 0, len(p))
	for _, pt := range p {
		if !math.IsNaN(pt.Avg) {
			out = append(out, pt)
		}
	}
	return out
}
