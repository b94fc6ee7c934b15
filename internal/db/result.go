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

package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/antst/aellph/internal/coeff"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// Key identifies a computation: its inputs and the table settings it ran
// with.
type Key struct {
	TablesDir string  `db:"tables_dir"`
	Settings  string  `db:"settings"`
	Teff      float64 `db:"teff"`
	Logg      float64 `db:"logg"`
	Fill      float64 `db:"fill"`
	Incl      float64 `db:"incl"`
	MassRatio float64 `db:"mass_ratio"`
	Band      string  `db:"band"`
}

// Result is one logged computation. Undefined coefficients are NULL.
type Result struct {
	ID int64 `db:"id"`
	Key
	A1c       sql.NullFloat64 `db:"a1c"`
	A2c       sql.NullFloat64 `db:"a2c"`
	A3c       sql.NullFloat64 `db:"a3c"`
	CreatedAt time.Time       `db:"created_at"`
}

// NullCoeff converts a coefficient to a nullable column value.
func NullCoeff(c coeff.Value) sql.NullFloat64 {
	v, ok := c.Get()
	return sql.NullFloat64{Float64: v, Valid: ok}
}

// Coeff converts a nullable column value back to a coefficient.
func Coeff(n sql.NullFloat64) coeff.Value {
	if !n.Valid {
		return coeff.None()
	}
	return coeff.Some(n.Float64)
}

// SaveResult appends r to the log and returns its id. CreatedAt is set when
// zero.
func (d *DB) SaveResult(ctx context.Context, r *Result) (int64, error) {
	const QUERY = `
		INSERT INTO result(tables_dir, settings, teff, logg, fill, incl, mass_ratio, band, a1c, a2c, a3c, created_at)
		VALUES(:tables_dir, :settings, :teff, :logg, :fill, :incl, :mass_ratio, :band, :a1c, :a2c, :a3c, :created_at);`
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	res, err := d.x.NamedExecContext(ctx, QUERY, r)
	if err != nil {
		return 0, errors.Wrap(err, "failed to save result")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "failed to read result id")
	}
	r.ID = id
	return id, nil
}

// FindResult returns the latest logged result for k.
func (d *DB) FindResult(ctx context.Context, k Key) (*Result, bool, error) {
	const QUERY = `
		SELECT * FROM result
		WHERE tables_dir=:tables_dir AND settings=:settings
		AND teff=:teff AND logg=:logg AND fill=:fill AND incl=:incl AND mass_ratio=:mass_ratio AND band=:band
		ORDER BY id DESC LIMIT 1;`
	query, args, err := sqlx.Named(QUERY, k)
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to bind result key")
	}

	var r Result
	err = d.x.GetContext(ctx, &r, d.x.Rebind(query), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to look up result")
	}
	return &r, true, nil
}

// RecentResults returns up to limit results, newest first.
func (d *DB) RecentResults(ctx context.Context, limit int) ([]Result, error) {
	const QUERY = `SELECT * FROM result ORDER BY id DESC LIMIT $1;`
	var rs []Result
	if err := d.x.SelectContext(ctx, &rs, QUERY, limit); err != nil {
		return nil, errors.Wrap(err, "failed to list results")
	}
	return rs, nil
}
