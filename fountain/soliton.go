package fountain

import "math"

// DefaultC and DefaultDelta are the Robust Soliton parameters pinned by this
// implementation. They are part of the wire-compatibility contract: an
// encoder and decoder must agree on them exactly, since the degree they
// sample for a given (run_id, seq_num, k) depends on the CDF they build.
const (
	DefaultC     = 0.03
	DefaultDelta = 0.05
)

// solitonCDF is the cumulative distribution function of the Robust Soliton
// distribution for a fixed k, built once per session and reused for every
// packet drawn in it.
type solitonCDF struct {
	k   int
	cdf []float64 // cdf[i] = P(degree <= i+1), length k
}

// newSolitonCDF builds the Robust Soliton CDF for k source blocks with
// parameters c and delta, following spec §4.2.
func newSolitonCDF(k int, c, delta float64) *solitonCDF {
	if k == 1 {
		return &solitonCDF{k: 1, cdf: []float64{1}}
	}

	rho := make([]float64, k+1) // 1-indexed
	rho[1] = 1.0 / float64(k)
	for i := 2; i <= k; i++ {
		fi := float64(i)
		rho[i] = 1.0 / (fi * (fi - 1))
	}

	r := c * math.Log(float64(k)/delta) * math.Sqrt(float64(k))
	tau := make([]float64, k+1)
	threshold := int(float64(k) / r)
	for i := 1; i < threshold && i <= k; i++ {
		tau[i] = r / (float64(i) * float64(k))
	}
	if threshold >= 1 && threshold <= k {
		tau[threshold] = r * math.Log(r/delta) / float64(k)
	}

	sum := 0.0
	for i := 1; i <= k; i++ {
		sum += rho[i] + tau[i]
	}

	cdf := make([]float64, k)
	running := 0.0
	for i := 1; i <= k; i++ {
		running += (rho[i] + tau[i]) / sum
		cdf[i-1] = running
	}
	// Guard against floating-point drift so a draw of u very close to 1
	// always resolves to a valid degree.
	cdf[k-1] = 1.0

	return &solitonCDF{k: k, cdf: cdf}
}

// sample draws a degree in [1, k] from the distribution via a uniform draw
// and binary search over the CDF.
func (s *solitonCDF) sample(p *prng) int {
	if s.k == 1 {
		return 1
	}
	u := p.float64()
	lo, hi := 0, len(s.cdf)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if s.cdf[mid] < u {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo + 1
}
