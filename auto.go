package palquant

import "context"

// QuantizeAuto chooses between a small and a full palette.
//
// It probes with QuantizeFixed(ProbeColors). If the probe's MeanError is
// below EscalationThreshold the probe palette is kept; otherwise the image is
// quantized again at MaxColors using the configured mode. It returns the
// requested color count of the kept palette.
func (q *Quantizer) QuantizeAuto() (int, error) {
	probe := q.opt.ProbeColors
	if err := q.QuantizeFixed(probe); err != nil {
		return 0, err
	}
	e, err := q.MeanError()
	if err != nil {
		return 0, err
	}
	n := probe
	if e >= q.opt.EscalationThreshold {
		n = MaxColors
		if err := q.Quantize(n, q.opt.HighQuality); err != nil {
			return 0, err
		}
	}
	q.opt.Logger.LogAuto(context.Background(), e, n)
	return n, nil
}
