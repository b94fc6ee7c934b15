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
	"math"

	"github.com/antst/aellph/internal/config"

	"github.com/pkg/errors"
)

var ErrInvalidParameters = errors.New("invalid parameters")

// Parameters describe the primary star, the orbit and the observing band.
type Parameters struct {
	Teff        float64 `json:"teff" yaml:"teff"`
	Logg        float64 `json:"logg" yaml:"logg"`
	F           float64 `json:"fill" yaml:"fill"`
	Inclination float64 `json:"incl" yaml:"incl"`
	Q           float64 `json:"mass_ratio" yaml:"mass_ratio"`
	Band        string  `json:"band" yaml:"band"`
}

// Validate checks the preconditions every computation relies on.
func (p Parameters) Validate() error {
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"teff", p.Teff},
		{"logg", p.Logg},
		{"fill", p.F},
		{"incl", p.Inclination},
		{"mass_ratio", p.Q},
	} {
		if math.IsNaN(v.val) || math.IsInf(v.val, 0) {
			return errors.Wrapf(ErrInvalidParameters, "%s is not finite", v.name)
		}
	}

	switch {
	case p.Teff <= 0:
		return errors.Wrapf(ErrInvalidParameters, "teff %v must be positive", p.Teff)
	case p.Q <= 0:
		return errors.Wrapf(ErrInvalidParameters, "mass ratio %v must be positive", p.Q)
	case p.F <= 0 || p.F >= 1:
		return errors.Wrapf(ErrInvalidParameters, "filling factor %v must be in (0, 1)", p.F)
	case p.Inclination < 0 || p.Inclination > 90:
		return errors.Wrapf(ErrInvalidParameters, "inclination %v must be in [0, 90]", p.Inclination)
	case p.Band == "":
		return errors.Wrap(ErrInvalidParameters, "band is empty")
	}
	return nil
}

// ParametersFromQuery takes the parameters given on the command line.
func ParametersFromQuery(q *config.QueryConfig) (Parameters, error) {
	if err := q.Complete(); err != nil {
		return Parameters{}, errors.Wrap(ErrInvalidParameters, err.Error())
	}
	p := Parameters{
		Teff:        *q.Teff,
		Logg:        *q.Logg,
		F:           *q.F,
		Inclination: *q.I,
		Q:           *q.Q,
		Band:        q.Band,
	}
	return p, p.Validate()
}
