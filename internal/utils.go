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
	"github.com/antst/aellph/internal/config"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Request is one computation asked for over MQTT. The payload is a JSON (or
// YAML) object with the parameter names of the command line.
type Request struct {
	ID                 string `yaml:"id"`
	config.QueryConfig `yaml:",inline"`
}

// Response is published for every Request.
type Response struct {
	ID         string      `json:"id,omitempty"`
	Parameters *Parameters `json:"parameters,omitempty"`
	Harmonics
	Error string `json:"error,omitempty"`
}

func parseRequest(payload []byte) (Request, Parameters, error) {
	var req Request
	err := yaml.Unmarshal(payload, &req)
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	if err != nil {
		return req, Parameters{}, errors.Wrapf(err, "failed to parse request `%s`", string(payload))
	}
	p, err := ParametersFromQuery(&req.QueryConfig)
	return req, p, err
}
