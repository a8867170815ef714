package regression

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var errShape = errors.New("inconsistent training data")

// Ridge is an L2-penalized least squares regression with an unpenalized intercept
type Ridge struct {
	Alpha     float64
	Coef      []float64
	Intercept float64
}

// NewRidge creates a ridge model with penalty alpha
func NewRidge(alpha float64) *Ridge {
	return &Ridge{Alpha: alpha}
}

// Fit solves (XᵀX + αI)w = Xᵀy on centered data
func (m *Ridge) Fit(x [][]float64, y []float64) error {
	n, p, err := shape(x, y)
	if err != nil {
		return err
	}

	xMean := make([]float64, p)
	col := make([]float64, n)
	for j := 0; j < p; j++ {
		for i := range x {
			col[i] = x[i][j]
		}
		xMean[j] = stat.Mean(col, nil)
	}
	yMean := stat.Mean(y, nil)

	xc := mat.NewDense(n, p, nil)
	yc := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			xc.Set(i, j, x[i][j]-xMean[j])
		}
		yc.SetVec(i, y[i]-yMean)
	}

	var gram mat.Dense
	gram.Mul(xc.T(), xc)
	for j := 0; j < p; j++ {
		gram.Set(j, j, gram.At(j, j)+m.Alpha)
	}

	var rhs mat.VecDense
	rhs.MulVec(xc.T(), yc)

	var w mat.VecDense
	if err := w.SolveVec(&gram, &rhs); err != nil {
		return fmt.Errorf("solving ridge system: %w", err)
	}

	m.Coef = make([]float64, p)
	for j := range m.Coef {
		m.Coef[j] = w.AtVec(j)
	}
	m.Intercept = yMean - floats.Dot(xMean, m.Coef)
	return nil
}

// Predict returns the fitted value for one row
func (m *Ridge) Predict(row []float64) float64 {
	return floats.Dot(row, m.Coef) + m.Intercept
}

// SVR is an epsilon-insensitive support-vector regression with an RBF kernel.
// The bias is folded into the kernel, which is then solved by dual coordinate descent.
type SVR struct {
	C       float64
	Epsilon float64
	// Gamma is the RBF width. Zero selects 1 / (features * variance of X).
	Gamma   float64
	MaxIter int
	Tol     float64

	gamma   float64
	support [][]float64
	beta    []float64
}

// NewSVR creates a model with C=1, epsilon=0.1 and a scaled gamma
func NewSVR() *SVR {
	return &SVR{
		C:       1,
		Epsilon: 0.1,
		MaxIter: 1000,
		Tol:     1e-6,
	}
}

func (m *SVR) kernel(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return math.Exp(-m.gamma*d*d) + 1
}

// Fit minimizes ½βᵀQβ - yᵀβ + ε|β|₁ subject to |βᵢ| <= C
func (m *SVR) Fit(x [][]float64, y []float64) error {
	n, p, err := shape(x, y)
	if err != nil {
		return err
	}

	m.gamma = m.Gamma
	if m.gamma <= 0 {
		m.gamma = scaleGamma(x, p)
	}

	q := make([][]float64, n)
	for i := range q {
		q[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			k := m.kernel(x[i], x[j])
			q[i][j] = k
			q[j][i] = k
		}
	}

	beta := make([]float64, n)
	grad := make([]float64, n)
	for i := range grad {
		grad[i] = -y[i]
	}

	for iter := 0; iter < m.MaxIter; iter++ {
		var maxDelta float64
		for i := 0; i < n; i++ {
			qii := q[i][i]
			z := beta[i] - grad[i]/qii
			shrunk := math.Max(math.Abs(z)-m.Epsilon/qii, 0)
			next := math.Copysign(shrunk, z)
			next = math.Max(-m.C, math.Min(m.C, next))

			delta := next - beta[i]
			if delta == 0 {
				continue
			}
			beta[i] = next
			for j := 0; j < n; j++ {
				grad[j] += delta * q[j][i]
			}
			maxDelta = math.Max(maxDelta, math.Abs(delta))
		}
		if maxDelta < m.Tol {
			break
		}
	}

	m.support = m.support[:0]
	m.beta = m.beta[:0]
	for i, b := range beta {
		if b != 0 {
			m.support = append(m.support, x[i])
			m.beta = append(m.beta, b)
		}
	}
	return nil
}

// Predict returns the fitted value for one row
func (m *SVR) Predict(row []float64) float64 {
	var sum float64
	for i, sv := range m.support {
		sum += m.beta[i] * m.kernel(sv, row)
	}
	return sum
}

// scaleGamma is 1 / (p * Var(X)) over every element of x
func scaleGamma(x [][]float64, p int) float64 {
	all := make([]float64, 0, len(x)*p)
	for _, row := range x {
		all = append(all, row...)
	}
	if len(all) < 2 {
		return 1
	}
	_, variance := stat.MeanVariance(all, nil)
	n := float64(len(all))
	variance = variance * (n - 1) / n
	if variance == 0 || math.IsNaN(variance) {
		return 1
	}
	return 1 / (float64(p) * variance)
}

func shape(x [][]float64, y []float64) (int, int, error) {
	if len(x) == 0 || len(x) != len(y) {
		return 0, 0, fmt.Errorf("%w: %d rows, %d outcomes", errShape, len(x), len(y))
	}
	p := len(x[0])
	if p == 0 {
		return 0, 0, fmt.Errorf("%w: no inputs", errShape)
	}
	for i, row := range x {
		if len(row) != p {
			return 0, 0, fmt.Errorf("%w: row %d has %d inputs, want %d", errShape, i, len(row), p)
		}
	}
	return len(x), p, nil
}
