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

// Package tablestest writes small synthetic reference tables for tests.
// Every coefficient is an affine function of the grid coordinates, so any
// linear interpolation reproduces it exactly.
package tablestest

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var (
	Teffs       = []float64{3500, 5000, 6500, 8000, 10000, 20000, 40000}
	Loggs       = []float64{0, 1, 2, 3, 4, 4.5, 5}
	Bands       = []string{"B", "V", "R", "I"}
	bandOffsets = map[string]float64{"B": 0.05, "V": 0, "R": -0.03, "I": -0.06}

	SimQs     = []float64{0.1, 0.5, 1, 2, 10}
	SimFs     = []float64{0.3, 0.6, 0.9}
	SimSin2is = []float64{0.2, 0.6, 1}
	SimTeffs  = []float64{4935, 8000, 16700}
	SimLoggs  = []float64{4.0722, 4.3, 4.5963}
)

// OtherMetallicity rows must never take part in an interpolation.
const (
	OtherMetallicity = -1.0
	otherCoefficient = 0.123
)

// LimbValue is the zero-metallicity limb-darkening coefficient u.
func LimbValue(teff, logg float64, band string) float64 {
	return 0.9 - 1e-5*teff + 0.02*logg + bandOffsets[band]
}

// GravityValue is the zero-metallicity gravity-darkening coefficient y.
func GravityValue(logTeff, logg float64, band string) float64 {
	return 0.5 - 0.1*logTeff + 0.01*logg + bandOffsets[band]
}

// A1CValue is the simulated first-harmonic coefficient.
func A1CValue(q, f4, sin2i, teff, logg float64) float64 {
	return 0.001 + 0.002*q + 0.01*f4 + 0.003*sin2i + 1e-7*teff - 0.001*logg
}

func write(t testing.TB, path string, lines []string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteLimbDarkening writes Claret_LD.tsv into dir and returns its path.
func WriteLimbDarkening(t testing.TB, dir string) string {
	lines := []string{"logg;Teff;Z;xi;u;Filt;Met;Mod"}
	for _, band := range Bands {
		for _, teff := range Teffs {
			for _, logg := range Loggs {
				lines = append(lines,
					fmt.Sprintf("%g;%g;0.0;2.0;%.7f;%s ;L;A", logg, teff, LimbValue(teff, logg, band), band),
					fmt.Sprintf("%g;%g;%g;2.0;%g;%s ;L;A", logg, teff, OtherMetallicity, otherCoefficient, band),
				)
			}
		}
	}
	path := filepath.Join(dir, "Claret_LD.tsv")
	write(t, path, lines)
	return path
}

// WriteGravityDarkening writes Claret_GD.tsv into dir and returns its path.
func WriteGravityDarkening(t testing.TB, dir string) string {
	lines := []string{"logg;logTeff;Z;xi;y;Filt;Mod"}
	for _, band := range Bands {
		for _, teff := range Teffs {
			logTeff := float64(float32(math.Log10(teff)))
			for _, logg := range Loggs {
				lines = append(lines,
					fmt.Sprintf("%g;%.7f;0.0;2.0;%.7f;%s ;A", logg, logTeff, GravityValue(logTeff, logg, band), band),
					fmt.Sprintf("%g;%.7f;%g;2.0;%g;%s ;A", logg, logTeff, OtherMetallicity, otherCoefficient, band),
				)
			}
		}
	}
	path := filepath.Join(dir, "Claret_GD.tsv")
	write(t, path, lines)
	return path
}

// WriteSimulation writes A1C_<band>.txt into dir and returns its path.
func WriteSimulation(t testing.TB, dir, band string) string {
	lines := []string{"q,F,sin2i,Teff,logg,a1c"}
	for _, q := range SimQs {
		for _, f := range SimFs {
			for _, s := range SimSin2is {
				for _, teff := range SimTeffs {
					for _, logg := range SimLoggs {
						a1c := A1CValue(q, math.Pow(f, 4), s, teff, logg)
						lines = append(lines, fmt.Sprintf("%g,%g,%g,%g,%g,%.17g", q, f, s, teff, logg, a1c))
					}
				}
			}
		}
	}
	path := filepath.Join(dir, fmt.Sprintf("A1C_%s.txt", band))
	write(t, path, lines)
	return path
}

// WriteAll writes every table into a fresh temporary directory.
func WriteAll(t testing.TB) string {
	t.Helper()
	dir := t.TempDir()
	WriteLimbDarkening(t, dir)
	WriteGravityDarkening(t, dir)
	for _, band := range Bands {
		WriteSimulation(t, dir, band)
	}
	return dir
}
