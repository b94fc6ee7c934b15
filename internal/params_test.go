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
	"errors"
	"math"
	"testing"

	"github.com/antst/aellph/internal/config"
)

func validParameters() Parameters {
	return Parameters{Teff: 6000, Logg: 4.3, F: 0.5, Inclination: 85, Q: 0.8, Band: "V"}
}

func TestParametersValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(p *Parameters)
		valid  bool
	}{
		{"valid", func(p *Parameters) {}, true},
		{"face-on", func(p *Parameters) { p.Inclination = 0 }, true},
		{"edge-on", func(p *Parameters) { p.Inclination = 90 }, true},
		{"negative logg", func(p *Parameters) { p.Logg = -1 }, true},
		{"nan teff", func(p *Parameters) { p.Teff = math.NaN() }, false},
		{"inf logg", func(p *Parameters) { p.Logg = math.Inf(1) }, false},
		{"zero teff", func(p *Parameters) { p.Teff = 0 }, false},
		{"zero q", func(p *Parameters) { p.Q = 0 }, false},
		{"negative q", func(p *Parameters) { p.Q = -1 }, false},
		{"zero f", func(p *Parameters) { p.F = 0 }, false},
		{"f one", func(p *Parameters) { p.F = 1 }, false},
		{"inclination above 90", func(p *Parameters) { p.Inclination = 91 }, false},
		{"negative inclination", func(p *Parameters) { p.Inclination = -1 }, false},
		{"empty band", func(p *Parameters) { p.Band = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParameters()
			tt.modify(&p)
			err := p.Validate()
			if tt.valid && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidParameters) {
				t.Errorf("Validate() = %v, want %v", err, ErrInvalidParameters)
			}
		})
	}
}

func TestParametersFromQuery(t *testing.T) {
	q := &config.QueryConfig{
		Teff: config.GetPTR(6000.0),
		Logg: config.GetPTR(4.3),
		F:    config.GetPTR(0.5),
		I:    config.GetPTR(85.0),
		Q:    config.GetPTR(0.8),
		Band: "V",
	}
	p, err := ParametersFromQuery(q)
	if err != nil {
		t.Fatalf("ParametersFromQuery: %v", err)
	}
	if p != validParameters() {
		t.Errorf("ParametersFromQuery = %+v, want %+v", p, validParameters())
	}

	q.Q = nil
	if _, err := ParametersFromQuery(q); !errors.Is(err, ErrInvalidParameters) {
		t.Errorf("missing mass ratio: error = %v, want %v", err, ErrInvalidParameters)
	}
}
