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
	"context"
	"time"

	"github.com/antst/aellph/internal/coeff"
	"github.com/antst/aellph/internal/config"
	"github.com/antst/aellph/internal/darkening"
	"github.com/antst/aellph/internal/db"
	"github.com/antst/aellph/internal/logger"
	"github.com/antst/aellph/internal/metrics"
	"github.com/antst/aellph/internal/tables"

	"github.com/pkg/errors"
)

const otherBand = "other"

// Calculator answers harmonic amplitude queries against one set of loaded
// reference tables. It is safe for concurrent use.
type Calculator struct {
	cfg      *config.Config
	store    *tables.Store
	results  *db.DB
	settings string
}

// NewCalculator loads the darkening tables and, when configured, opens the
// result log.
func NewCalculator(ctx context.Context, cfg *config.Config) (*Calculator, error) {
	store, err := tables.Open(ctx, cfg.Tables)
	if err != nil {
		return nil, err
	}

	c := &Calculator{
		cfg:   cfg,
		store: store,
	}

	if cfg.DBFile != "" {
		if c.settings, err = cfg.TableSettings(); err != nil {
			return nil, err
		}
		if c.results, err = db.Open(cfg.DBFile); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Calculator) Close() error {
	if c.results == nil {
		return nil
	}
	return c.results.Close()
}

// DB is the result log, or nil when it is disabled.
func (c *Calculator) DB() *db.DB {
	return c.results
}

// AellPH computes the harmonic amplitudes for p. With reuse_results set, an
// identical earlier query is answered from the result log.
func (c *Calculator) AellPH(ctx context.Context, p Parameters) (Harmonics, error) {
	if err := p.Validate(); err != nil {
		return Harmonics{}, err
	}

	if c.results != nil && c.cfg.ReuseResults {
		if h, ok := c.lookup(ctx, p); ok {
			metrics.ResultCacheHits.Inc()
			return h, nil
		}
	}

	h, err := compute(c.store, c.cfg.Darkening, p)
	if err != nil {
		return Harmonics{}, err
	}

	if c.results != nil {
		c.save(ctx, p, h)
	}
	return h, nil
}

// AellPH loads the tables from dir and computes the harmonic amplitudes for
// p with the default darkening row selection.
func AellPH(dir string, p Parameters) (Harmonics, error) {
	if err := p.Validate(); err != nil {
		return Harmonics{}, err
	}

	cfg := config.NewTablesConfig()
	cfg.Dir = dir
	store, err := tables.Open(context.Background(), cfg)
	if err != nil {
		return Harmonics{}, err
	}
	return compute(store, config.NewDarkeningConfig(), p)
}

func compute(store *tables.Store, filter *config.DarkeningConfig, p Parameters) (h Harmonics, err error) {
	band := bandLabel(store, p.Band)
	start := time.Now()
	defer func() {
		metrics.ComputationLatency.Observe(time.Since(start).Seconds())
		metrics.ComputationsTotal.WithLabelValues(band, metrics.Status(err)).Inc()
		if err == nil {
			countUndefined(band, h)
		}
	}()

	u1, err := darkening.Interpolate(store.LimbDarkening, p.Logg, p.Teff, p.Band, filter)
	if err != nil {
		return Harmonics{}, errors.WithMessage(err, "limb darkening")
	}
	tau1, err := darkening.Interpolate(store.GravityDarkening, p.Logg, p.Teff, p.Band, filter)
	if err != nil {
		return Harmonics{}, errors.WithMessage(err, "gravity darkening")
	}
	logger.L().Debugf("Darkening for %+v: u1=%v, tau1=%v", p, u1, tau1)

	return ComputeHarmonics(store, p, u1, tau1)
}

// bandLabel keeps the metric label set to the configured bands.
func bandLabel(store *tables.Store, band string) string {
	if !store.HasSimulation(band) {
		return otherBand
	}
	return tables.SimulationBand(band)
}

func countUndefined(band string, h Harmonics) {
	for _, c := range []struct {
		name string
		val  coeff.Value
	}{
		{"a1c", h.A1c},
		{"a2c", h.A2c},
		{"a3c", h.A3c},
	} {
		if !c.val.IsDefined() {
			metrics.UndefinedTotal.WithLabelValues(c.name, band).Inc()
		}
	}
}

func (c *Calculator) key(p Parameters) db.Key {
	return db.Key{
		TablesDir: c.store.Dir(),
		Settings:  c.settings,
		Teff:      p.Teff,
		Logg:      p.Logg,
		Fill:      p.F,
		Incl:      p.Inclination,
		MassRatio: p.Q,
		Band:      p.Band,
	}
}

func (c *Calculator) lookup(ctx context.Context, p Parameters) (Harmonics, bool) {
	r, ok, err := c.results.FindResult(ctx, c.key(p))
	if err != nil {
		logger.L().Error(err)
		return Harmonics{}, false
	}
	if !ok {
		return Harmonics{}, false
	}
	logger.L().Debugf("Reusing result %d for %+v", r.ID, p)
	return Harmonics{A1c: db.Coeff(r.A1c), A2c: db.Coeff(r.A2c), A3c: db.Coeff(r.A3c)}, true
}

func (c *Calculator) save(ctx context.Context, p Parameters, h Harmonics) {
	_, err := c.results.SaveResult(ctx, &db.Result{
		Key: c.key(p),
		A1c: db.NullCoeff(h.A1c),
		A2c: db.NullCoeff(h.A2c),
		A3c: db.NullCoeff(h.A3c),
	})
	if err != nil {
		logger.L().Error(err)
	}
}
