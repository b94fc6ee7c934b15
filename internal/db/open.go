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
	"github.com/antst/aellph/internal/logger"
	"github.com/antst/aellph/sql/schema"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// sqlite serialises writers; one connection also keeps ":memory:" databases
// shared between calls.
const maxOpenConns = 1

type DB struct {
	x *sqlx.DB
}

// Open opens (creating if needed) the sqlite database in dbFile and applies
// the schema.
func Open(dbFile string) (*DB, error) {
	x, err := sqlx.Connect("sqlite3", dbFile)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database `%s`", dbFile)
	}
	x.SetMaxOpenConns(maxOpenConns)

	// Create tables if they don't exist
	if _, err := x.Exec(schema.Schema); err != nil {
		x.Close()
		return nil, errors.Wrapf(err, "failed to apply schema to `%s`", dbFile)
	}

	logger.L().Debugf("Opened result database `%s`", dbFile)
	return &DB{x: x}, nil
}

func (d *DB) Close() error {
	return d.x.Close()
}
