package palquant

import "runtime"

// MaxColors is the largest palette a Quantizer produces.
const MaxColors = 256

type Options struct {
	// Upper bound on refinement iterations in high-quality mode.
	// Ideal start: 16-64. Each iteration costs O(palette × samples).
	MaxRefineIterations int
	// Refinement stops once the mean error improves by less than this.
	// Units match MeanError (squared 8-bit steps over RGBA).
	RefineEpsilon float64
	// Scales the ordered dither offset. 0 disables the perturbation entirely,
	// 1 mixes neighboring palette entries across the full Bayer range.
	// Values above ~1.5 start to look noisy.
	DitherStrength float64
	// Goroutines used by the pixel mapper. 0 means GOMAXPROCS.
	Workers int
	// Palette size probed by QuantizeAuto before escalating to MaxColors.
	ProbeColors int
	// QuantizeAuto keeps the probe palette when its MeanError is below this.
	// 32 corresponds to an RMS deviation of roughly 2.8 steps per channel.
	EscalationThreshold float64
	// Escalated quantize in QuantizeAuto uses the refinement strategy.
	HighQuality bool
	// Nil means NoopLogger.
	Logger *Logger
}

func DefaultOptions() Options {
	return Options{
		MaxRefineIterations: 32,
		RefineEpsilon:       1e-3,
		DitherStrength:      1.0,
		Workers:             0,
		ProbeColors:         16,
		EscalationThreshold: 32,
		HighQuality:         false,
		Logger:              nil,
	}
}

// normalized fills zero values with defaults.
func (o Options) normalized() Options {
	def := DefaultOptions()
	if o.MaxRefineIterations <= 0 {
		o.MaxRefineIterations = def.MaxRefineIterations
	}
	if o.RefineEpsilon <= 0 {
		o.RefineEpsilon = def.RefineEpsilon
	}
	if o.DitherStrength < 0 {
		o.DitherStrength = 0
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.ProbeColors <= 0 || o.ProbeColors > MaxColors {
		o.ProbeColors = def.ProbeColors
	}
	if o.EscalationThreshold <= 0 {
		o.EscalationThreshold = def.EscalationThreshold
	}
	if o.Logger == nil {
		o.Logger = NoopLogger()
	}
	return o
}
