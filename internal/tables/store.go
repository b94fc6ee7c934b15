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

package tables

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/antst/aellph/internal/config"
	"github.com/antst/aellph/internal/logger"
	"github.com/antst/aellph/internal/metrics"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Store holds the reference tables. The darkening tables are loaded by Open;
// simulation tables are loaded on first use and kept. All tables are
// read-only once loaded and a Store is safe for concurrent use.
type Store struct {
	dir string
	cfg *config.TablesConfig

	LimbDarkening    *DarkeningTable
	GravityDarkening *DarkeningTable

	mu          sync.Mutex
	bands       map[string]bool
	simulations map[string]*SimulationTable
}

// Open resolves the table directory and loads both darkening tables.
func Open(ctx context.Context, cfg *config.TablesConfig) (*Store, error) {
	dir, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve table directory `%s`", cfg.Dir)
	}

	s := &Store{
		dir:         dir,
		cfg:         cfg,
		bands:       make(map[string]bool, len(cfg.SimulationBands)),
		simulations: make(map[string]*SimulationTable),
	}
	for _, b := range cfg.SimulationBands {
		s.bands[SimulationBand(b)] = true
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := loadDarkening(ctx, filepath.Join(dir, cfg.LimbDarkening), LimbDarkening)
		s.LimbDarkening = t
		return err
	})
	g.Go(func() error {
		t, err := loadDarkening(ctx, filepath.Join(dir, cfg.GravityDarkening), GravityDarkening)
		s.GravityDarkening = t
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.L().Infof("Reference tables loaded from `%s`", dir)
	return s, nil
}

func loadDarkening(ctx context.Context, path string, kind Kind) (*DarkeningTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t, err := LoadDarkening(path, kind)
	metrics.TableLoadsTotal.WithLabelValues(kind.String(), metrics.Status(err)).Inc()
	return t, err
}

// Dir is the absolute table directory.
func (s *Store) Dir() string {
	return s.dir
}

// HasSimulation reports whether a first-harmonic simulation table exists
// for band.
func (s *Store) HasSimulation(band string) bool {
	return s.bands[SimulationBand(band)]
}

// Simulation returns the first-harmonic table for band, loading it on first
// use. ok is false when no simulation covers the band.
func (s *Store) Simulation(band string) (t *SimulationTable, ok bool, err error) {
	band = SimulationBand(band)
	if !s.bands[band] {
		return nil, false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if t, found := s.simulations[band]; found {
		return t, true, nil
	}

	path := filepath.Join(s.dir, fmt.Sprintf(s.cfg.SimulationPattern, band))
	t, err = LoadSimulation(path, band)
	metrics.TableLoadsTotal.WithLabelValues("A1C_"+band, metrics.Status(err)).Inc()
	if err != nil {
		return nil, true, err
	}
	s.simulations[band] = t
	return t, true, nil
}
