package centerline

import "github.com/appliedgrg/bera-tools/skeleton"

// Status reports how a centerline was obtained. The numeric values are
// stored alongside results and must not change.
type Status int

const (
	Success           Status = 1
	Failed            Status = 2
	RegenerateSuccess Status = 3
	RegenerateFailed  Status = 4
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Success:
		return "SUCCESS"
	case Failed:
		return "FAILED"
	case RegenerateSuccess:
		return "REGENERATE_SUCCESS"
	case RegenerateFailed:
		return "REGENERATE_FAILED"
	default:
		return "UNKNOWN"
	}
}

// Params tunes Find. Lengths and areas are in world units.
type Params struct {
	BufferClip       float64 // radius trimmed off each skeleton end
	SegmentizeLength float64 // longest polygon edge after densification
	SimplifyLength   float64 // Douglas-Peucker tolerance on the polygon
	SmoothSigma      float64 // Gaussian smoothing of the skeleton, in vertices
	CleanupArea      float64 // parts below this area are dropped before a split
	SmallBuffer      float64 // buffer used to weld near-touching parts
	Epsilon          float64 // endpoint tolerance of the validity check
	MaxDepth         int     // regeneration depth limit

	DeleteHoles     bool
	SimplifyPolygon bool

	Skeleton skeleton.Options
}

// DefaultParams returns the parameters used by the centerline tool.
func DefaultParams() Params {
	return Params{
		BufferClip:       5,
		SegmentizeLength: 1,
		SimplifyLength:   0.5,
		SmoothSigma:      0.8,
		CleanupArea:      1,
		SmallBuffer:      1e-3,
		Epsilon:          1e-6,
		MaxDepth:         3,
		DeleteHoles:      true,
		SimplifyPolygon:  true,
		Skeleton:         skeleton.DefaultOptions(),
	}
}
