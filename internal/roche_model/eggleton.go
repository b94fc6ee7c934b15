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

package roche_model

import "math"

// Eggleton returns the volume-equivalent Roche-lobe radius of the primary in
// units of the orbital separation, for mass ratio q = M2/M1 (Eggleton 1983).
// q must be positive.
func Eggleton(q float64) float64 {
	q23 := math.Pow(q, -2.0/3.0)
	return 0.49 * q23 / (0.6*q23 + math.Log(1+math.Cbrt(1/q)))
}
