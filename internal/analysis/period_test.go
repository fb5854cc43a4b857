package analysis

import (
	"math"
	"testing"

	"github.com/san-kum/simcore/internal/integrators"
	"github.com/san-kum/simcore/internal/physics"
)

func TestZeroCrossingPeriodSine(t *testing.T) {
	dt := 0.01
	samples := make([]float64, 1000)
	for i := range samples {
		samples[i] = math.Sin(2*math.Pi*float64(i)*dt/1.7 + 0.3)
	}

	if p := ZeroCrossingPeriod(samples, dt); math.Abs(p-1.7) > 1e-3 {
		t.Errorf("expected period 1.7, got %f", p)
	}
}

func TestZeroCrossingPeriodTooShort(t *testing.T) {
	if p := ZeroCrossingPeriod([]float64{-1, 1, 2, 3}, 0.1); p != 0 {
		t.Errorf("expected 0 with a single crossing, got %f", p)
	}
}

func TestDominantPeriodSine(t *testing.T) {
	tests := []struct {
		name   string
		period float64
		n      int
		dt     float64
	}{
		{"between bins", 2.5, 2048, 0.01},
		{"short record", 1.3, 1500, 0.01},
		{"few cycles", 0.9, 400, 0.02},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := make([]float64, tt.n)
			for i := range samples {
				samples[i] = 3 + math.Cos(2*math.Pi*float64(i)*tt.dt/tt.period)
			}
			if p := DominantPeriod(samples, tt.dt); math.Abs(p-tt.period)/tt.period > 0.005 {
				t.Errorf("expected period %f, got %f", tt.period, p)
			}
		})
	}
}

func TestDominantPeriodFlat(t *testing.T) {
	if p := DominantPeriod([]float64{1, 1, 1, 1, 1, 1, 1, 1}, 0.1); p != 0 {
		t.Errorf("expected 0 for flat input, got %f", p)
	}
}

func TestPendulumSmallAnglePeriod(t *testing.T) {
	p := physics.NewPendulum()
	want := physics.SmallAnglePeriod(p.Length, p.Gravity)
	dt := 1e-3

	tests := []struct {
		name   string
		theta0 float64
	}{
		{"2deg", 2 * math.Pi / 180},
		{"5deg", 5 * math.Pi / 180},
		{"10deg", 10 * math.Pi / 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theta := physics.Swing(p, integrators.NewRK4(), tt.theta0, dt, 10*want)
			got := ZeroCrossingPeriod(theta, dt)
			if math.Abs(got-want)/want > 0.05 {
				t.Errorf("expected period within 5%% of %f, got %f", want, got)
			}

			if got := DominantPeriod(theta, dt); math.Abs(got-want)/want > 0.05 {
				t.Errorf("expected spectral period within 5%% of %f, got %f", want, got)
			}
		})
	}
}
