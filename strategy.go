package palquant

// Mode selects the clustering strategy run by Quantize.
type Mode int

const (
	// ModeFast builds the palette with greedy variance splits only.
	ModeFast Mode = iota
	// ModeHighQuality follows the splits with iterative centroid relaxation.
	ModeHighQuality
)

func (m Mode) String() string {
	switch m {
	case ModeHighQuality:
		return "high-quality"
	default:
		return "fast"
	}
}

// strategy turns a histogram into at most target clusters.
// Both strategies share the cluster representation of the split tree.
type strategy interface {
	partition(h *histogram, target int) []*cluster
}

func (m Mode) strategy(opt Options) strategy {
	switch m {
	case ModeHighQuality:
		return refineStrategy{
			maxIter: opt.MaxRefineIterations,
			epsilon: opt.RefineEpsilon,
			logger:  opt.Logger,
		}
	default:
		return splitStrategy{}
	}
}

type splitStrategy struct{}

func (splitStrategy) partition(h *histogram, target int) []*cluster {
	return buildTree(h, target)
}

type refineStrategy struct {
	maxIter int
	epsilon float64
	logger  *Logger
}

func (s refineStrategy) partition(h *histogram, target int) []*cluster {
	return refine(h, buildTree(h, target), s.maxIter, s.epsilon, s.logger)
}
