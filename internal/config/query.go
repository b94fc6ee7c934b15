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

package config

import (
	"strings"

	"github.com/pkg/errors"
)

// QueryConfig holds the one-shot parameter set given on the command line.
type QueryConfig struct {
	Teff *float64 `yaml:"teff,omitempty"`
	Logg *float64 `yaml:"logg,omitempty"`
	F    *float64 `yaml:"fill,omitempty"`
	I    *float64 `yaml:"incl,omitempty"`
	Q    *float64 `yaml:"mass_ratio,omitempty"`
	Band string   `yaml:"band,omitempty"`
}

// Complete reports which parameters are still missing.
func (c *QueryConfig) Complete() error {
	var missing []string
	for _, p := range []struct {
		name string
		set  bool
	}{
		{"teff", c.Teff != nil},
		{"logg", c.Logg != nil},
		{"fill", c.F != nil},
		{"incl", c.I != nil},
		{"mass-ratio", c.Q != nil},
		{"band", c.Band != ""},
	} {
		if !p.set {
			missing = append(missing, p.name)
		}
	}
	if len(missing) > 0 {
		return errors.Errorf("missing parameters: %s", strings.Join(missing, ", "))
	}
	return nil
}
