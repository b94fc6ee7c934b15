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

// Package darkening interpolates linear limb- and gravity-darkening
// coefficients from the Claret grids.
package darkening

import (
	"math"

	"github.com/antst/aellph/internal/coeff"
	"github.com/antst/aellph/internal/config"
	"github.com/antst/aellph/internal/griddata"
	"github.com/antst/aellph/internal/logger"
	"github.com/antst/aellph/internal/tables"

	"github.com/pkg/errors"
)

const (
	minTeff = 3500.0
	maxTeff = 40000.0
	minLogg = 0.0
	maxLogg = 5.0
)

// Interpolate returns the darkening coefficient of table at (logg, teff) in
// band. The result is undefined when no rows match the band or the clamped
// point lies outside the grid.
func Interpolate(table *tables.DarkeningTable, logg, teff float64, band string, filter *config.DarkeningConfig) (coeff.Value, error) {
	teff = clamp(teff, minTeff, maxTeff)
	logg = clamp(logg, minLogg, maxLogg)
	band = tables.NormalizeBand(band)

	points, values := subset(table, band, filter)
	if len(points) < 3 {
		logger.L().Debugf("No %v grid for band `%s` (%d rows)", table.Kind, band, len(points))
		return coeff.None(), nil
	}

	l, err := griddata.NewLinear(points, values)
	if err != nil {
		return coeff.None(), errors.Wrapf(err, "%v table %s, band `%s`", table.Kind, table.Path, band)
	}

	x := teff
	if table.Kind == tables.GravityDarkening {
		x = math.Log10(teff)
	}
	c, err := l.Eval(x, logg)
	if err != nil {
		return coeff.None(), errors.WithMessagef(err, "%v table, band `%s`", table.Kind, band)
	}
	if !c.IsDefined() {
		logger.L().Debugf("%v: (teff=%v, logg=%v) is outside the `%s` grid", table.Kind, teff, logg, band)
	}
	return c, nil
}

func subset(table *tables.DarkeningTable, band string, filter *config.DarkeningConfig) ([][]float64, []float64) {
	if filter == nil {
		filter = config.NewDarkeningConfig()
	}

	var points [][]float64
	var values []float64
	for _, r := range table.Rows {
		if r.Metallicity != filter.Metallicity || r.Band != band {
			continue
		}
		if filter.Microturbulence != nil && r.Microturbulence != *filter.Microturbulence {
			continue
		}
		if filter.Model != "" && r.Mod != filter.Model {
			continue
		}
		if filter.Method != "" && r.Met != filter.Method {
			continue
		}
		points = append(points, []float64{float64(r.Temperature), float64(r.Logg)})
		values = append(values, float64(r.Coefficient))
	}
	return points, values
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
