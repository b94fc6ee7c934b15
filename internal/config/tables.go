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

const (
	defaultTablesDir         = "."
	defaultLimbDarkening     = "Claret_LD.tsv"
	defaultGravityDarkening  = "Claret_GD.tsv"
	defaultSimulationPattern = "A1C_%s.txt"
)

var defaultSimulationBands = []string{"B", "V", "R", "I"}

// TablesConfig locates the reference tables.
type TablesConfig struct {
	Dir               string   `yaml:"dir"`
	LimbDarkening     string   `yaml:"limb_darkening"`
	GravityDarkening  string   `yaml:"gravity_darkening"`
	SimulationPattern string   `yaml:"simulation_pattern"`
	SimulationBands   []string `yaml:"simulation_bands"`
}

func NewTablesConfig() *TablesConfig {
	cfg := &TablesConfig{}
	cfg.FillDefaults()
	return cfg
}

func (c *TablesConfig) FillDefaults() {
	if c.Dir == "" {
		c.Dir = defaultTablesDir
	}
	if c.LimbDarkening == "" {
		c.LimbDarkening = defaultLimbDarkening
	}
	if c.GravityDarkening == "" {
		c.GravityDarkening = defaultGravityDarkening
	}
	if c.SimulationPattern == "" {
		c.SimulationPattern = defaultSimulationPattern
	}
	if len(c.SimulationBands) == 0 {
		c.SimulationBands = append([]string(nil), defaultSimulationBands...)
	}
}
