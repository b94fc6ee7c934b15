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

package ellipsoidal_model

import "math"

// Fitted large-filling-factor correction parameters.
var (
	secondCoeff = [4]float64{
		1.09090812767358000, 0.03791808778223120, 0.00504447910111281, 0.04464586115427450,
	}
	thirdCoeff = [4]float64{
		0.2074876857271310, 0.0698076131977346, 2.0222797170372300, 0.3879775920855080,
	}
)

const (
	minThirdQ = 0.1
	maxThirdQ = 10.0
	maxThirdF = 0.9
)

// CorrectSecond applies the empirical correction to the normalised MN93
// second-harmonic amplitude a2.
func CorrectSecond(a2, f, q float64) float64 {
	a, b, c, d := secondCoeff[0], secondCoeff[1], secondCoeff[2], secondCoeff[3]
	return a2 * (1 - f/(f-a)*(b+c/(d+q)))
}

// ThirdInDomain reports whether the third-harmonic correction was fitted
// for q and f.
func ThirdInDomain(f, q float64) bool {
	return q >= minThirdQ && q <= maxThirdQ && f <= maxThirdF
}

// CorrectThird applies the empirical correction to the normalised MN93
// third-harmonic amplitude a3. ok is false outside the fitted domain.
func CorrectThird(a3, f, q, sini float64) (float64, bool) {
	if !ThirdInDomain(f, q) {
		return 0, false
	}
	a, b, c, d := thirdCoeff[0], thirdCoeff[1], thirdCoeff[2], thirdCoeff[3]
	s2 := sini * sini
	f2 := f * f
	f6 := f2 * f2 * f2
	return a3 * (1 + (f6+a*f2+b*q*s2*f6)/(c*f+s2*s2+d*f*math.Log(q))), true
}
