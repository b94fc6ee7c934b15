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

// Package simulation interpolates the first-harmonic coefficient a1c from
// the per-band grids of simulated light curves.
package simulation

import (
	"math"

	"github.com/antst/aellph/internal/coeff"
	"github.com/antst/aellph/internal/griddata"
	"github.com/antst/aellph/internal/logger"
	"github.com/antst/aellph/internal/tables"

	"github.com/pkg/errors"
)

// Domain is the parameter box covered by the simulations. Queries outside it
// are never extrapolated.
type Domain struct {
	MinQ, MaxQ         float64
	MinF, MaxF         float64
	MinSin2i, MaxSin2i float64
	MinTeff, MaxTeff   float64
	MinLogg, MaxLogg   float64
}

var DefaultDomain = Domain{
	MinQ: 0.1, MaxQ: 10,
	MinF: 0.3, MaxF: 0.9,
	MinSin2i: 0.2, MaxSin2i: 1,
	MinTeff: 4935, MaxTeff: 16700,
	MinLogg: 4.0722, MaxLogg: 4.5963,
}

func (d Domain) Contains(teff, logg, q, f, sin2i float64) bool {
	return q >= d.MinQ && q <= d.MaxQ &&
		f >= d.MinF && f <= d.MaxF &&
		sin2i >= d.MinSin2i && sin2i <= d.MaxSin2i &&
		teff >= d.MinTeff && teff <= d.MaxTeff &&
		logg >= d.MinLogg && logg <= d.MaxLogg
}

// Sin2i is sin²(i) for an inclination in degrees, clamped to the simulated
// range.
func Sin2i(inclination float64) float64 {
	s := math.Sin(inclination * math.Pi / 180)
	return math.Min(math.Max(s*s, DefaultDomain.MinSin2i), DefaultDomain.MaxSin2i)
}

// A1C returns the first-harmonic coefficient for the given primary and
// orbit, interpolated over (q, F⁴, sin²i, Teff, logg).
func A1C(table *tables.SimulationTable, teff, logg, q, f, inclination float64) (coeff.Value, error) {
	sin2i := Sin2i(inclination)
	if !DefaultDomain.Contains(teff, logg, q, f, sin2i) {
		logger.L().Debugf(
			"a1c: (teff=%v, logg=%v, q=%v, f=%v, sin2i=%v) is outside the simulated domain",
			teff, logg, q, f, sin2i,
		)
		return coeff.None(), nil
	}

	points := make([][]float64, len(table.Rows))
	values := make([]float64, len(table.Rows))
	for i, r := range table.Rows {
		points[i] = []float64{r.Q, math.Pow(r.F, 4), r.Sin2i, r.Teff, r.Logg}
		values[i] = r.A1C
	}

	l, err := griddata.NewLinear(points, values)
	if err != nil {
		return coeff.None(), errors.Wrapf(err, "simulation table %s", table.Path)
	}
	c, err := l.Eval(q, math.Pow(f, 4), sin2i, teff, logg)
	if err != nil {
		return coeff.None(), errors.WithMessagef(err, "simulation table %s", table.Path)
	}
	return c, nil
}
