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

	"github.com/pkg/errors"
)

// SetControlValue stores a runtime setting changed over MQTT.
func (d *DB) SetControlValue(ctx context.Context, name, value string) error {
	const QUERY = `
		INSERT INTO control(name, value, updated_at)
		VALUES($1, $2, $3)
		ON CONFLICT(name) DO UPDATE SET
		value=excluded.value,
		updated_at=excluded.updated_at;`
	_, err := d.x.ExecContext(ctx, QUERY, name, value, time.Now().UTC())
	return errors.Wrapf(err, "failed to store control value `%s`", name)
}

// ControlValue returns a stored setting, or defValue when it was never set.
func (d *DB) ControlValue(ctx context.Context, name, defValue string) (string, error) {
	const QUERY = `SELECT value FROM control WHERE name=$1;`
	var val string
	err := d.x.GetContext(ctx, &val, QUERY, name)
	if errors.Is(err, sql.ErrNoRows) {
		return defValue, nil
	}
	if err != nil {
		return defValue, errors.Wrapf(err, "failed to read control value `%s`", name)
	}
	return val, nil
}
