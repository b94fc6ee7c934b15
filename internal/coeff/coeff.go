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

// Package coeff holds the optional real value used for every coefficient
// that may have no defined value for a given input.
package coeff

import (
	"encoding/json"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

const undefinedText = "undefined"

// Value is a real number or nothing. The zero Value is undefined.
type Value struct {
	v  float64
	ok bool
}

// Some returns a defined Value. Non-finite inputs yield an undefined Value.
func Some(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Value{}
	}
	return Value{v: v, ok: true}
}

// None returns an undefined Value.
func None() Value {
	return Value{}
}

// Get returns the value and whether it is defined.
func (c Value) Get() (float64, bool) {
	return c.v, c.ok
}

func (c Value) IsDefined() bool {
	return c.ok
}

// Or returns the value, or def when undefined.
func (c Value) Or(def float64) float64 {
	if !c.ok {
		return def
	}
	return c.v
}

// Float64 returns the value, or NaN when undefined.
func (c Value) Float64() float64 {
	return c.Or(math.NaN())
}

func (c Value) String() string {
	if !c.ok {
		return undefinedText
	}
	return strconv.FormatFloat(c.v, 'g', -1, 64)
}

func (c Value) MarshalJSON() ([]byte, error) {
	if !c.ok {
		return []byte("null"), nil
	}
	return json.Marshal(c.v)
}

func (c *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = None()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = Some(v)
	return nil
}

func (c Value) MarshalYAML() (interface{}, error) {
	if !c.ok {
		return nil, nil
	}
	return c.v, nil
}

func (c *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!null" {
		*c = None()
		return nil
	}
	var v float64
	if err := node.Decode(&v); err != nil {
		return err
	}
	*c = Some(v)
	return nil
}
