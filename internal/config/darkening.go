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

// DarkeningConfig selects the rows of the darkening tables that take part in
// the interpolation. Unset optional filters match every row.
type DarkeningConfig struct {
	Metallicity     float32  `yaml:"metallicity"`
	Microturbulence *float32 `yaml:"microturbulence,omitempty"`
	Model           string   `yaml:"model,omitempty"`
	// Method matches the Met column of the limb-darkening table (L or F).
	Method string `yaml:"method,omitempty"`
}

func NewDarkeningConfig() *DarkeningConfig {
	return &DarkeningConfig{}
}
