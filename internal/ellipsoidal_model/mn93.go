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

// Package ellipsoidal_model holds the closed-form amplitudes of the
// ellipsoidal variation of Morris & Naftilan (1993) and the empirical
// corrections that extend them to large Roche-lobe filling factors.
package ellipsoidal_model

import (
	"math"

	"github.com/antst/aellph/internal/roche_model"
)

// MN93Terms are the raw perturbative terms for one configuration.
type MN93Terms struct {
	// A2 is the leading second-harmonic amplitude.
	A2 float64
	// Correction is the higher-order second-harmonic term.
	Correction float64
	// Lave is the orbit-averaged luminosity the amplitudes are normalised by.
	Lave float64
	// A3 is the third-harmonic amplitude.
	A3 float64
}

// MN93 evaluates the terms for linear limb-darkening u1, gravity-darkening
// tau1, filling factor f, mass ratio q and sin(i).
func MN93(u1, tau1, f, q, sini float64) MN93Terms {
	r := f * roche_model.Eggleton(q)
	r3, r4, r5 := r*r*r, r*r*r*r, r*r*r*r*r
	s2 := sini * sini
	s3 := s2 * sini
	s4 := s2 * s2
	ld := 3 - u1

	return MN93Terms{
		A2:         -3 * (15 + u1) * (1 + tau1) / (20 * ld) * r3 * q * s2,
		Correction: -15 * (1 - u1) * (3 + tau1) * r5 * q * (6*s2 - 7*s4) / (64 * ld),
		Lave: 1 +
			(15+u1)*(1+tau1)*r3*(2+5*q)*(2-3*s2)/(60*ld) +
			9*(1-u1)*(3+tau1)*r5*q*(8-40*s2+35*s4)/(256*ld),
		A3: -25 * u1 * (2 + tau1) * r4 * q * s3 / 32 / ld,
	}
}

// SecondHarmonic is the normalised MN93 second-harmonic amplitude.
func (t MN93Terms) SecondHarmonic() float64 {
	return (t.A2 + t.Correction) / t.Lave
}

// ThirdHarmonic is the normalised MN93 third-harmonic amplitude.
func (t MN93Terms) ThirdHarmonic() float64 {
	return t.A3 / t.Lave
}

// SinInclination converts an inclination in degrees.
func SinInclination(inclination float64) float64 {
	return math.Sin(inclination * math.Pi / 180)
}
