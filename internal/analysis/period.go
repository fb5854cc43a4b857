package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// ZeroCrossingPeriod returns the mean interval between successive upward
// zero crossings of samples taken every dt. It returns 0 when fewer than two
// crossings are found.
func ZeroCrossingPeriod(samples []float64, dt float64) float64 {
	var crossings []float64
	for i := 1; i < len(samples); i++ {
		a, b := samples[i-1], samples[i]
		if a < 0 && b >= 0 {
			frac := a / (a - b)
			crossings = append(crossings, (float64(i-1)+frac)*dt)
		}
	}
	if len(crossings) < 2 {
		return 0
	}
	return (crossings[len(crossings)-1] - crossings[0]) / float64(len(crossings)-1)
}

// PowerSpectrum returns |X_k| for the first half of the DFT of data.
func PowerSpectrum(data []float64) []float64 {
	spectrum := fft.FFTReal(data)
	ps := make([]float64, len(spectrum)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}

	return ps
}

// padFactor is the minimum zero-padding ratio applied before the FFT.
const padFactor = 8

// DominantPeriod returns the period of the strongest frequency in samples
// taken every dt. The mean is removed, a Hann window applied and the input
// zero-padded before the FFT; the peak bin is refined by a Gaussian fit on
// the log magnitudes of its neighbours. It returns 0 for flat or too-short
// input.
func DominantPeriod(samples []float64, dt float64) float64 {
	n := len(samples)
	if n < 4 || dt <= 0 {
		return 0
	}

	var mean float64
	for _, v := range samples {
		mean += v
	}
	mean /= float64(n)

	size := 1
	for size < padFactor*n {
		size <<= 1
	}
	padded := make([]float64, size)
	for i, v := range samples {
		w := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
		padded[i] = (v - mean) * w
	}

	ps := PowerSpectrum(padded)
	peak := 0
	for k := 1; k < len(ps); k++ {
		if ps[k] > ps[peak] || peak == 0 {
			peak = k
		}
	}
	if peak == 0 || ps[peak] == 0 {
		return 0
	}

	bin := float64(peak)
	if peak+1 < len(ps) && ps[peak-1] > 0 && ps[peak+1] > 0 {
		l, c, r := math.Log(ps[peak-1]), math.Log(ps[peak]), math.Log(ps[peak+1])
		if d := l - 2*c + r; d != 0 {
			bin += 0.5 * (l - r) / d
		}
	}

	freq := bin / (float64(size) * dt)
	if !(freq > 0) || math.IsInf(freq, 0) {
		return 0
	}
	return 1 / freq
}
