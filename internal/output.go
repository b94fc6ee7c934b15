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
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// WriteResult prints one computation, as JSON or as `name = value` lines.
func WriteResult(w io.Writer, p Parameters, h Harmonics, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(Response{Parameters: &p, Harmonics: h}), "failed to write result")
	}

	_, err := fmt.Fprintf(w, "a1c = %v\na2c = %v\na3c = %v\n", h.A1c, h.A2c, h.A3c)
	return errors.Wrap(err, "failed to write result")
}
