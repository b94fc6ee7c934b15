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

package internal

import (
	"github.com/antst/aellph/internal/coeff"
	"github.com/antst/aellph/internal/ellipsoidal_model"
	"github.com/antst/aellph/internal/logger"
	"github.com/antst/aellph/internal/simulation"
	"github.com/antst/aellph/internal/tables"

	"github.com/pkg/errors"
)

// Harmonics are the semi-amplitudes of the first three cosine harmonics of
// the ellipsoidal variation. Each one may be undefined.
type Harmonics struct {
	A1c coeff.Value `json:"a1c" yaml:"a1c"`
	A2c coeff.Value `json:"a2c" yaml:"a2c"`
	A3c coeff.Value `json:"a3c" yaml:"a3c"`
}

// ComputeHarmonics combines the simulated first harmonic with the corrected
// MN93 second and third harmonics. u1 and tau1 are the limb- and
// gravity-darkening coefficients; when either is undefined only a1c can be
// computed.
func ComputeHarmonics(store *tables.Store, p Parameters, u1, tau1 coeff.Value) (Harmonics, error) {
	if err := p.Validate(); err != nil {
		return Harmonics{}, err
	}

	var h Harmonics

	a1c, err := firstHarmonic(store, p)
	if err != nil {
		return Harmonics{}, err
	}
	h.A1c = a1c

	u, uOK := u1.Get()
	tau, tauOK := tau1.Get()
	if !uOK || !tauOK {
		logger.L().Debugf("harmonics: darkening undefined (u1=%v, tau1=%v), skipping a2c and a3c", u1, tau1)
		return h, nil
	}

	sini := ellipsoidal_model.SinInclination(p.Inclination)
	terms := ellipsoidal_model.MN93(u, tau, p.F, p.Q, sini)

	h.A2c = coeff.Some(ellipsoidal_model.CorrectSecond(terms.SecondHarmonic(), p.F, p.Q))
	if a3c, ok := ellipsoidal_model.CorrectThird(terms.ThirdHarmonic(), p.F, p.Q, sini); ok {
		h.A3c = coeff.Some(a3c)
	}

	return h, nil
}

func firstHarmonic(store *tables.Store, p Parameters) (coeff.Value, error) {
	table, ok, err := store.Simulation(p.Band)
	if err != nil {
		return coeff.None(), errors.WithMessagef(err, "a1c for band `%s`", p.Band)
	}
	if !ok {
		logger.L().Debugf("harmonics: no first-harmonic simulation for band `%s`", p.Band)
		return coeff.None(), nil
	}
	return simulation.A1C(table, p.Teff, p.Logg, p.Q, p.F, p.Inclination)
}
