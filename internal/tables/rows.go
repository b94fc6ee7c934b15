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

// Package tables loads the reference tables used by the harmonic
// computation: the limb- and gravity-darkening grids and the per-band
// first-harmonic simulation grids.
package tables

import "strings"

// Kind tells which darkening table a DarkeningTable holds.
type Kind int

const (
	// LimbDarkening rows carry Teff and the linear limb-darkening coefficient u.
	LimbDarkening Kind = iota
	// GravityDarkening rows carry log10(Teff) and the gravity-darkening coefficient y.
	GravityDarkening
)

func (k Kind) String() string {
	switch k {
	case LimbDarkening:
		return "LD"
	case GravityDarkening:
		return "GD"
	default:
		return "unknown"
	}
}

// DarkeningRow is one row of a limb- or gravity-darkening table.
// Temperature is Teff for LimbDarkening tables and log10(Teff) for
// GravityDarkening tables.
type DarkeningRow struct {
	Logg            float32
	Temperature     float32
	Metallicity     float32
	Microturbulence float32
	Coefficient     float32
	Band            string
	Met             string
	Mod             string
}

type DarkeningTable struct {
	Kind Kind
	Path string
	Rows []DarkeningRow
}

// SimulationRow is one sample of the first-harmonic simulation grid.
type SimulationRow struct {
	Q     float64
	F     float64
	Sin2i float64
	Teff  float64
	Logg  float64
	A1C   float64
}

type SimulationTable struct {
	Band string
	Path string
	Rows []SimulationRow
}

// NormalizeBand pads one-character band codes to the two-character width
// used by the darkening tables.
func NormalizeBand(band string) string {
	if len(band) == 1 {
		return band + " "
	}
	return band
}

// SimulationBand is the band key used for the simulation tables.
func SimulationBand(band string) string {
	return strings.TrimSpace(band)
}
