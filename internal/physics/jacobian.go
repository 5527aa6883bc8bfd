package physics

import (
	"errors"
	"sort"

	"github.com/san-kum/lorenz/internal/dynamo"
	"gonum.org/v1/gonum/mat"
)

// Jacobian returns the matrix of partial derivatives of the field at s.
func Jacobian(s dynamo.State, p Params) *mat.Dense {
	x, y, z := s[0], s[1], s[2]
	return mat.NewDense(3, 3, []float64{
		-p.Sigma, p.Sigma, 0,
		p.Rho - z, -1, -x,
		y, x, -p.Beta,
	})
}

// Eigenvalues returns the eigenvalues of the Jacobian at s, sorted by
// descending real part. An equilibrium is stable when the first one has a
// negative real part.
func Eigenvalues(s dynamo.State, p Params) ([]complex128, error) {
	var eig mat.Eigen
	if !eig.Factorize(Jacobian(s, p), mat.EigenNone) {
		return nil, errors.New("eigen decomposition did not converge")
	}
	vals := eig.Values(nil)
	sort.Slice(vals, func(i, j int) bool {
		if real(vals[i]) != real(vals[j]) {
			return real(vals[i]) > real(vals[j])
		}
		return imag(vals[i]) > imag(vals[j])
	})
	return vals, nil
}
