package regression

import (
	"math"
	"testing"
)

func TestRidge_OrdinaryLeastSquares(t *testing.T) {
	// y = 2a - 3b + 1
	x := [][]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {2, 1}, {1, 3}}
	y := make([]float64, len(x))
	for i, row := range x {
		y[i] = 2*row[0] - 3*row[1] + 1
	}

	m := NewRidge(0)
	if err := m.Fit(x, y); err != nil {
		t.Fatalf("Fit() error: %v", err)
	}

	want := []float64{2, -3}
	for i, c := range m.Coef {
		if math.Abs(c-want[i]) > 1e-9 {
			t.Errorf("Coef[%d] = %v, want %v", i, c, want[i])
		}
	}
	if math.Abs(m.Intercept-1) > 1e-9 {
		t.Errorf("Intercept = %v, want 1", m.Intercept)
	}
	if got := m.Predict([]float64{3, 2}); math.Abs(got-1) > 1e-9 {
		t.Errorf("Predict() = %v, want 1", got)
	}
}

func TestRidge_Shrinks(t *testing.T) {
	x := [][]float64{{1}, {2}, {3}}
	y := []float64{2, 4, 6}

	m := NewRidge(1)
	if err := m.Fit(x, y); err != nil {
		t.Fatalf("Fit() error: %v", err)
	}

	// Sxy / (Sxx + alpha) = 4 / 3
	if math.Abs(m.Coef[0]-4.0/3) > 1e-9 {
		t.Errorf("Coef = %v, want 4/3", m.Coef[0])
	}
	if math.Abs(m.Intercept-4.0/3) > 1e-9 {
		t.Errorf("Intercept = %v, want 4/3", m.Intercept)
	}
}

func TestRidge_BadShape(t *testing.T) {
	tests := []struct {
		name string
		x    [][]float64
		y    []float64
	}{
		{"empty", nil, nil},
		{"length mismatch", [][]float64{{1}, {2}}, []float64{1}},
		{"ragged", [][]float64{{1, 2}, {3}}, []float64{1, 2}},
		{"no inputs", [][]float64{{}, {}}, []float64{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := NewRidge(1).Fit(tt.x, tt.y); err == nil {
				t.Error("Fit() should fail")
			}
		})
	}
}

func TestSVR_FitsSmoothCurve(t *testing.T) {
	var x [][]float64
	var y []float64
	for i := 0; i < 25; i++ {
		v := float64(i) * 0.125
		x = append(x, []float64{v})
		y = append(y, math.Sin(v))
	}

	m := NewSVR()
	if err := m.Fit(x, y); err != nil {
		t.Fatalf("Fit() error: %v", err)
	}

	var totalErr float64
	for i, row := range x {
		totalErr += math.Abs(m.Predict(row) - y[i])
	}
	if mae := totalErr / float64(len(x)); mae > 0.15 {
		t.Errorf("mean absolute error = %v, want <= 0.15", mae)
	}
}

func TestSVR_InsideTube(t *testing.T) {
	x := [][]float64{{0}, {1}, {2}, {3}}
	y := []float64{0.05, -0.05, 0.02, 0}

	m := NewSVR()
	if err := m.Fit(x, y); err != nil {
		t.Fatalf("Fit() error: %v", err)
	}

	if len(m.support) != 0 {
		t.Errorf("support vectors = %d, want 0", len(m.support))
	}
	if got := m.Predict([]float64{1.5}); got != 0 {
		t.Errorf("Predict() = %v, want 0", got)
	}
}

func TestScaleGamma(t *testing.T) {
	x := [][]float64{{0, 2}, {2, 0}}
	// elements 0,2,2,0: population variance 1
	if got := scaleGamma(x, 2); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("scaleGamma() = %v, want 0.5", got)
	}

	constant := [][]float64{{1}, {1}}
	if got := scaleGamma(constant, 1); got != 1 {
		t.Errorf("scaleGamma(constant) = %v, want 1", got)
	}
}
