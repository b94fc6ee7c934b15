/*
 * Copyright (c) 2023. Anton Starikov -- All Rights Reserved
 *
 * This file is part of AELLPH project.
 *
 * AELLPH is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as the Free Software Foundation,
 * either version 3 of the License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

// Package griddata implements piecewise linear interpolation over scattered
// samples in any number of dimensions.
//
// The interpolant on each cell is the barycentric blend of the vertices of
// the Delaunay simplex containing the query. The simplex is found without
// building the triangulation: lifting every sample to (p, |p-x|²), the
// Delaunay simplex at x is the optimal basis of
//
//	min  Σ wᵢ |pᵢ-x|²
//	s.t. Σ wᵢ (pᵢ-x) = 0,  Σ wᵢ = 1,  w ≥ 0
//
// and the program is infeasible exactly when x lies outside the convex hull
// of the samples.
package griddata

import (
	"math"
	"sort"

	"github.com/antst/aellph/internal/coeff"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

const (
	simplexTol = 1e-10
	rankTol    = 1e-10
	hullSlack  = 1e-12
)

var (
	ErrDimension      = errors.New("griddata: dimension mismatch")
	ErrTooFewPoints   = errors.New("griddata: not enough points to form a simplex")
	ErrDuplicatePoint = errors.New("griddata: duplicate sample point")
	ErrDegenerate     = errors.New("griddata: sample points do not span the space")
)

// Interpolator evaluates a scattered-data interpolant at a point.
type Interpolator interface {
	// Eval returns the interpolated value at x, or an undefined value when
	// x lies outside the convex hull of the samples.
	Eval(x ...float64) (coeff.Value, error)
	// Dim is the number of coordinates of a query point.
	Dim() int
}

var _ Interpolator = &Linear{}

// Linear is a read-only linear interpolant; it is safe for concurrent use.
type Linear struct {
	dim    int
	points [][]float64
	values []float64
	lo, hi []float64
	span   []float64
}

// NewLinear builds an interpolant over points with the given values. Every
// point must have the same number of coordinates and no two points may
// coincide.
func NewLinear(points [][]float64, values []float64) (*Linear, error) {
	if len(points) != len(values) {
		return nil, errors.Wrapf(ErrDimension, "%d points but %d values", len(points), len(values))
	}
	if len(points) == 0 {
		return nil, ErrTooFewPoints
	}

	dim := len(points[0])
	if dim == 0 {
		return nil, errors.Wrap(ErrDimension, "zero-dimensional points")
	}
	if len(points) < dim+1 {
		return nil, errors.Wrapf(ErrTooFewPoints, "%d points in %d dimensions", len(points), dim)
	}

	l := &Linear{
		dim:    dim,
		points: make([][]float64, len(points)),
		values: make([]float64, len(values)),
		lo:     make([]float64, dim),
		hi:     make([]float64, dim),
		span:   make([]float64, dim),
	}
	copy(l.values, values)

	for k := range l.lo {
		l.lo[k], l.hi[k] = math.Inf(1), math.Inf(-1)
	}
	for i, p := range points {
		if len(p) != dim {
			return nil, errors.Wrapf(ErrDimension, "point %d has %d coordinates, want %d", i, len(p), dim)
		}
		for k, v := range p {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errors.Errorf("griddata: point %d has non-finite coordinate %d", i, k)
			}
			l.lo[k] = math.Min(l.lo[k], v)
			l.hi[k] = math.Max(l.hi[k], v)
		}
		l.points[i] = append([]float64(nil), p...)
	}
	for k := range l.span {
		l.span[k] = l.hi[k] - l.lo[k]
		if l.span[k] == 0 {
			return nil, errors.Wrapf(ErrDegenerate, "coordinate %d is constant", k)
		}
	}

	if i, j, ok := l.findDuplicate(); ok {
		return nil, errors.Wrapf(ErrDuplicatePoint, "points %d and %d at %v", i, j, l.points[i])
	}
	if r := l.affineRank(); r < dim {
		return nil, errors.Wrapf(ErrDegenerate, "affine rank %d in %d dimensions", r, dim)
	}

	return l, nil
}

func (l *Linear) Dim() int {
	return l.dim
}

// Len returns the number of samples.
func (l *Linear) Len() int {
	return len(l.points)
}

func (l *Linear) Eval(x ...float64) (coeff.Value, error) {
	if len(x) != l.dim {
		return coeff.None(), errors.Wrapf(ErrDimension, "query has %d coordinates, want %d", len(x), l.dim)
	}
	for k, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return coeff.None(), nil
		}
		slack := hullSlack * l.span[k]
		if v < l.lo[k]-slack || v > l.hi[k]+slack {
			return coeff.None(), nil
		}
	}

	for i, p := range l.points {
		if floats.Equal(p, x) {
			return coeff.Some(l.values[i]), nil
		}
	}

	n := len(l.points)
	m := l.dim + 1
	A := mat.NewDense(m, n, nil)
	b := make([]float64, m)
	c := make([]float64, n)
	b[l.dim] = 1

	for i, p := range l.points {
		d2 := 0.0
		for k, v := range p {
			d := v - x[k]
			d2 += d * d
			A.Set(k, i, d/l.span[k])
		}
		A.Set(l.dim, i, 1)
		c[i] = d2
	}
	if cMax := floats.Max(c); cMax > 0 {
		floats.Scale(1/cMax, c)
	}

	_, w, err := lp.Simplex(c, A, b, simplexTol, nil)
	if err != nil {
		if errors.Is(err, lp.ErrInfeasible) {
			return coeff.None(), nil
		}
		return coeff.None(), errors.Wrapf(err, "griddata: locating simplex at %v", x)
	}

	return coeff.Some(floats.Dot(w, l.values)), nil
}

func (l *Linear) findDuplicate() (int, int, bool) {
	idx := make([]int, len(l.points))
	for i := range idx {
		idx[i] = i
	}
	less := func(a, b []float64) bool {
		for k := range a {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return false
	}
	sort.Slice(idx, func(i, j int) bool { return less(l.points[idx[i]], l.points[idx[j]]) })

	for i := 1; i < len(idx); i++ {
		if floats.Equal(l.points[idx[i-1]], l.points[idx[i]]) {
			return idx[i-1], idx[i], true
		}
	}
	return 0, 0, false
}

// affineRank is the rank of the centred, span-normalised sample matrix.
func (l *Linear) affineRank() int {
	n := len(l.points)
	mean := make([]float64, l.dim)
	for _, p := range l.points {
		floats.Add(mean, p)
	}
	floats.Scale(1/float64(n), mean)

	centred := mat.NewDense(n, l.dim, nil)
	for i, p := range l.points {
		for k, v := range p {
			centred.Set(i, k, (v-mean[k])/l.span[k])
		}
	}

	var svd mat.SVD
	if !svd.Factorize(centred, mat.SVDNone) {
		return 0
	}
	sv := svd.Values(nil)
	rank := 0
	for _, s := range sv {
		if s > rankTol*sv[0] {
			rank++
		}
	}
	return rank
}
