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
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]string{"aellph", "-c", filepath.Join(t.TempDir(), "missing.yaml")})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.Tables.Dir != "." {
		t.Errorf("Tables.Dir = %q, want %q", cfg.Tables.Dir, ".")
	}
	if cfg.Tables.LimbDarkening != "Claret_LD.tsv" || cfg.Tables.GravityDarkening != "Claret_GD.tsv" {
		t.Errorf("darkening tables = %q, %q", cfg.Tables.LimbDarkening, cfg.Tables.GravityDarkening)
	}
	if cfg.Tables.SimulationPattern != "A1C_%s.txt" {
		t.Errorf("SimulationPattern = %q", cfg.Tables.SimulationPattern)
	}
	if len(cfg.Tables.SimulationBands) != 4 {
		t.Errorf("SimulationBands = %v, want B V R I", cfg.Tables.SimulationBands)
	}
	if cfg.MQTTConfig.URL != defaultMQTTURL || cfg.MQTTConfig.ControlTopic != defaultControlTopic {
		t.Errorf("MQTTConfig = %+v", cfg.MQTTConfig)
	}
	if cfg.Darkening.Metallicity != 0 || cfg.Darkening.Microturbulence != nil || cfg.Darkening.Model != "" {
		t.Errorf("Darkening = %+v, want zero-metallicity only", cfg.Darkening)
	}
	if err := cfg.Query.Complete(); err == nil {
		t.Error("empty query should be incomplete")
	}
}

func TestParseFileThenFlags(t *testing.T) {
	path := writeConfig(t, `
log_level: warn
tables:
  dir: /data/tables
  simulation_bands: [V]
darkening:
  microturbulence: 2
  model: A
db_file: /tmp/file.db
query:
  teff: 5000
  band: R
`)

	cfg, err := Parse([]string{
		"aellph", "-c", path,
		"--teff", "6000", "--logg", "4.3", "-f", "0.5", "-i", "85", "-q", "0.8", "-b", "V",
		"-d", "/tmp/flag.db", "--json",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.LogLevel != zapcore.WarnLevel {
		t.Errorf("LogLevel = %v, want warn", cfg.LogLevel)
	}
	if cfg.Tables.Dir != "/data/tables" {
		t.Errorf("Tables.Dir = %q", cfg.Tables.Dir)
	}
	if cfg.Tables.LimbDarkening != defaultLimbDarkening {
		t.Errorf("LimbDarkening = %q, want default", cfg.Tables.LimbDarkening)
	}
	if len(cfg.Tables.SimulationBands) != 1 || cfg.Tables.SimulationBands[0] != "V" {
		t.Errorf("SimulationBands = %v", cfg.Tables.SimulationBands)
	}
	if cfg.Darkening.Microturbulence == nil || *cfg.Darkening.Microturbulence != 2 || cfg.Darkening.Model != "A" {
		t.Errorf("Darkening = %+v", cfg.Darkening)
	}
	if cfg.DBFile != "/tmp/flag.db" {
		t.Errorf("DBFile = %q, flag should win", cfg.DBFile)
	}
	if !cfg.JSON || cfg.Serve {
		t.Errorf("JSON = %v, Serve = %v", cfg.JSON, cfg.Serve)
	}

	q := cfg.Query
	if err := q.Complete(); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if *q.Teff != 6000 || *q.Logg != 4.3 || *q.F != 0.5 || *q.I != 85 || *q.Q != 0.8 || q.Band != "V" {
		t.Errorf("Query = teff %v logg %v f %v i %v q %v band %q", *q.Teff, *q.Logg, *q.F, *q.I, *q.Q, q.Band)
	}
}

func TestParseBadYAML(t *testing.T) {
	path := writeConfig(t, "tables: [not, a, map")
	if _, err := Parse([]string{"aellph", "-c", path}); err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}

func TestParseHelp(t *testing.T) {
	if _, err := Parse([]string{"aellph", "-h"}); !errors.Is(err, ErrHelp) {
		t.Fatalf("Parse(-h) error = %v, want ErrHelp", err)
	}
}

func TestParseUnknownFlag(t *testing.T) {
	if _, err := Parse([]string{"aellph", "--no-such-flag"}); err == nil {
		t.Fatal("expected an error for an unknown flag")
	}
}

func TestTableSettings(t *testing.T) {
	cfg := defConfig()
	base, err := cfg.TableSettings()
	if err != nil {
		t.Fatalf("TableSettings: %v", err)
	}

	moved := defConfig()
	moved.Tables.Dir = "/elsewhere"
	if s, _ := moved.TableSettings(); s != base {
		t.Errorf("table directory changed the settings:\n%s\nvs\n%s", s, base)
	}

	tests := []struct {
		name   string
		modify func(cfg *Config)
	}{
		{"metallicity", func(cfg *Config) { cfg.Darkening.Metallicity = -1 }},
		{"method", func(cfg *Config) { cfg.Darkening.Method = "F" }},
		{"limb table", func(cfg *Config) { cfg.Tables.LimbDarkening = "other.tsv" }},
		{"simulation pattern", func(cfg *Config) { cfg.Tables.SimulationPattern = "sim_%s.csv" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defConfig()
			tt.modify(cfg)
			s, err := cfg.TableSettings()
			if err != nil {
				t.Fatalf("TableSettings: %v", err)
			}
			if s == base {
				t.Errorf("settings unchanged: %s", s)
			}
		})
	}
}
