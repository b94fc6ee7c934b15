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
	"fmt"
	"io"
	"os"

	"github.com/antst/aellph/internal/logger"

	"github.com/pborman/getopt/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	defaultMQTTURL      = "tcp://127.0.0.1:1883"
	defaultControlTopic = "aellph/control"
	defaultConfigFile   = "config.yaml"
)

// ErrHelp is returned by Parse when usage was requested.
var ErrHelp = errors.New("help requested")

type Config struct {
	LogLevel     zapcore.Level    `yaml:"log_level"`
	Tables       *TablesConfig    `yaml:"tables"`
	Darkening    *DarkeningConfig `yaml:"darkening"`
	DBFile       string           `yaml:"db_file"`
	ReuseResults bool             `yaml:"reuse_results"`
	MQTTConfig   *MQTTConfig      `yaml:"mqtt"`
	MetricsAddr  string           `yaml:"metrics_addr"`
	Query        *QueryConfig     `yaml:"query"`
	Serve        bool             `yaml:"-"`
	JSON         bool             `yaml:"-"`
}

func defConfig() *Config {
	return &Config{
		LogLevel:   zapcore.InfoLevel,
		Tables:     NewTablesConfig(),
		Darkening:  NewDarkeningConfig(),
		MQTTConfig: NewMQTTConfig(),
		Query:      &QueryConfig{},
	}
}

func prettyPrint(cfg *Config) {
	d, err := yaml.Marshal(cfg)
	if err != nil {
		logger.L().Error("Failed to marshal config for pretty print", err)
		return
	}
	logger.L().Debugf("--- Config ---\n%s\n\n", string(d))
}

func (cfg *Config) FillDefaults() {
	if cfg.Tables == nil {
		cfg.Tables = NewTablesConfig()
	}
	cfg.Tables.FillDefaults()

	if cfg.Darkening == nil {
		cfg.Darkening = NewDarkeningConfig()
	}
	if cfg.MQTTConfig == nil {
		cfg.MQTTConfig = NewMQTTConfig()
	}
	cfg.MQTTConfig.FillDefaults()

	if cfg.Query == nil {
		cfg.Query = &QueryConfig{}
	}
}

// Get parses the process command line, exiting on usage errors.
func Get() *Config {
	cfg, err := Parse(os.Args)
	if errors.Is(err, ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		logger.L().Fatalf("GetConfig: %v", err)
	}
	return cfg
}

// Parse builds the configuration from args (args[0] is the program name):
// defaults, then the YAML file, then command line flags.
func Parse(args []string) (*Config, error) {
	cfg := defConfig()
	set := getopt.New()

	logLevel := set.StringLong("log-level", 'l', "", "log levels: debug, info, warn, error, dpanic, panic, fatal")
	configFile := set.StringLong("config", 'c', defaultConfigFile, "config file pathname")
	tablesDir := set.StringLong("tables", 't', "", "directory holding the reference tables")
	dbFile := set.StringLong("db", 'd', "", "sqlite result log pathname")
	metricsAddr := set.StringLong("metrics", 'm', "", "serve Prometheus metrics on this address (serve mode)")
	band := set.StringLong("band", 'b', "", "observing band")
	jsonOut := set.BoolLong("json", 'j', "print the result as JSON")
	serve := set.BoolLong("serve", 's', "answer requests over MQTT instead of computing once")
	help := set.BoolLong("help", 'h', "show this help")

	var teff, logg, fill, incl, q float64
	teffOpt := set.FlagLong(&teff, "teff", 0, "effective temperature of the primary [K]")
	loggOpt := set.FlagLong(&logg, "logg", 0, "surface gravity of the primary [cgs dex]")
	fillOpt := set.FlagLong(&fill, "fill", 'f', "Roche-lobe filling factor of the primary")
	inclOpt := set.FlagLong(&incl, "incl", 'i', "orbital inclination [deg]")
	qOpt := set.FlagLong(&q, "mass-ratio", 'q', "binary mass ratio")

	if err := set.Getopt(args, nil); err != nil {
		set.PrintUsage(os.Stderr)
		return nil, errors.WithMessage(err, "failed to parse command line")
	}
	if *help {
		set.PrintUsage(os.Stderr)
		return nil, ErrHelp
	}

	if err := readFile(cfg, *configFile); err != nil {
		return nil, err
	}
	cfg.FillDefaults()

	if *tablesDir != "" {
		cfg.Tables.Dir = *tablesDir
	}
	if *dbFile != "" {
		cfg.DBFile = *dbFile
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}
	if *band != "" {
		cfg.Query.Band = *band
	}
	for _, o := range []struct {
		opt getopt.Option
		val float64
		dst **float64
	}{
		{teffOpt, teff, &cfg.Query.Teff},
		{loggOpt, logg, &cfg.Query.Logg},
		{fillOpt, fill, &cfg.Query.F},
		{inclOpt, incl, &cfg.Query.I},
		{qOpt, q, &cfg.Query.Q},
	} {
		if o.opt.Seen() {
			*o.dst = GetPTR(o.val)
		}
	}
	cfg.JSON = *jsonOut
	cfg.Serve = *serve

	if *logLevel != "" {
		if err := cfg.LogLevel.Set(*logLevel); err != nil {
			logger.L().Errorf("Wrong log level `%v`: %v", *logLevel, err)
		}
	}
	logger.SetLogLevel(cfg.LogLevel)

	logger.L().Debugf("Using config file `%v`", *configFile)
	prettyPrint(cfg)

	return cfg, nil
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	return err == nil && !info.IsDir()
}

func readFile(cfg *Config, configFileName string) error {
	if !fileExists(configFileName) {
		return nil
	}

	f, err := os.Open(configFileName)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	return nil
}

// TableSettings is the YAML of everything besides the table directory that
// changes a computed result: the table file names and the darkening row
// selection.
func (cfg *Config) TableSettings() (string, error) {
	tables := *cfg.Tables
	tables.Dir = ""
	d, err := yaml.Marshal(struct {
		Tables    *TablesConfig    `yaml:"tables"`
		Darkening *DarkeningConfig `yaml:"darkening"`
	}{&tables, cfg.Darkening})
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal table settings")
	}
	return string(d), nil
}
