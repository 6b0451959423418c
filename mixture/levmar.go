package mixture

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	lmMaxIter    = 200
	lmInitDamp   = 1e-3
	lmMinDamp    = 1e-12
	lmMaxDamp    = 1e12
	lmTol        = 1e-10
	lmSigmaFloor = 1e-12
)

// ErrFitFailed is returned when the curve fit cannot converge within
// its bounds.
var ErrFitFailed = errors.New("mixture: curve fit did not converge")

// bounds holds per-parameter box constraints in (Amp, Mean, Sigma) order.
type bounds struct {
	lo [3]float64
	hi [3]float64
}

func (b bounds) clamp(c Component) Component {
	p := [3]float64{c.Amp, c.Mean, c.Sigma}
	for i := range p {
		if p[i] < b.lo[i] {
			p[i] = b.lo[i]
		}
		if p[i] > b.hi[i] {
			p[i] = b.hi[i]
		}
	}
	return Component{Amp: p[0], Mean: p[1], Sigma: p[2]}
}

func sumSquares(x, y []float64, c Component) float64 {
	var sse float64
	for i := range x {
		r := y[i] - c.At(x[i])
		sse += r * r
	}
	return sse
}

// levenbergMarquardt minimizes the squared residual of a single Gaussian
// against (x, y) with box constraints, using the analytic Jacobian and
// damped normal equations. Steps leaving the box are projected back onto
// it before evaluation.
func levenbergMarquardt(x, y []float64, seed Component, b bounds) (Component, error) {
	cur := b.clamp(seed)
	curSSE := sumSquares(x, y, cur)
	if math.IsNaN(curSSE) || math.IsInf(curSSE, 0) {
		return Component{}, ErrFitFailed
	}

	damp := lmInitDamp

	for range lmMaxIter {
		var jtj [3][3]float64
		var jtr [3]float64

		invSig2 := 1 / (cur.Sigma * cur.Sigma)
		for i := range x {
			dx := x[i] - cur.Mean
			e := math.Exp(-dx * dx * invSig2 / 2)

			j := [3]float64{
				e,
				cur.Amp * e * dx * invSig2,
				cur.Amp * e * dx * dx * invSig2 / cur.Sigma,
			}
			r := y[i] - cur.Amp*e

			for a := 0; a < 3; a++ {
				jtr[a] += j[a] * r
				for c := a; c < 3; c++ {
					jtj[a][c] += j[a] * j[c]
				}
			}
		}
		jtj[1][0], jtj[2][0], jtj[2][1] = jtj[0][1], jtj[0][2], jtj[1][2]

		// Inner damping search: raise damp until a step helps.
		accepted := false
		for ; damp <= lmMaxDamp; damp *= 10 {
			a := mat.NewDense(3, 3, nil)
			for r := 0; r < 3; r++ {
				for c := 0; c < 3; c++ {
					v := jtj[r][c]
					if r == c {
						v += damp * jtj[r][r]
					}
					a.Set(r, c, v)
				}
			}
			rhs := mat.NewVecDense(3, jtr[:])

			var delta mat.VecDense
			if err := delta.SolveVec(a, rhs); err != nil {
				continue
			}

			cand := b.clamp(Component{
				Amp:   cur.Amp + delta.AtVec(0),
				Mean:  cur.Mean + delta.AtVec(1),
				Sigma: cur.Sigma + delta.AtVec(2),
			})
			candSSE := sumSquares(x, y, cand)
			if math.IsNaN(candSSE) || math.IsInf(candSSE, 0) {
				continue
			}

			if candSSE <= curSSE {
				improved := curSSE - candSSE
				cur, curSSE = cand, candSSE

				damp /= 10
				if damp < lmMinDamp {
					damp = lmMinDamp
				}
				accepted = true

				if improved <= lmTol*(curSSE+lmTol) {
					return cur, nil
				}
				break
			}
		}

		if !accepted {
			// No damping level improves: stationary point inside the box.
			return cur, nil
		}
	}

	return Component{}, ErrFitFailed
}
