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
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/antst/aellph/internal/logger"

	"github.com/pkg/errors"
)

// ErrMalformedTable is wrapped by every parse failure.
var ErrMalformedTable = errors.New("malformed table")

var (
	limbColumns       = []string{"logg", "Teff", "Z", "xi", "u", "Filt", "Met", "Mod"}
	gravityColumns    = []string{"logg", "logTeff", "Z", "xi", "y", "Filt", "Mod"}
	simulationColumns = []string{"q", "F", "sin2i", "Teff", "logg", "a1c"}
)

type recordParser struct {
	path    string
	columns []string
	line    int
	err     error
}

func (p *recordParser) fail(col int, err error) {
	if p.err == nil {
		p.err = errors.Wrapf(ErrMalformedTable, "%s:%d: column %s: %v", p.path, p.line, p.columns[col], err)
	}
}

func (p *recordParser) float32(rec []string, col int) float32 {
	v, err := strconv.ParseFloat(strings.TrimSpace(rec[col]), 32)
	if err != nil {
		p.fail(col, err)
	}
	return float32(v)
}

func (p *recordParser) float64(rec []string, col int) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(rec[col]), 64)
	if err != nil {
		p.fail(col, err)
	}
	return v
}

func (p *recordParser) code(rec []string, col int) string {
	return strings.TrimSpace(rec[col])
}

// readRecords reads a delimited file with a header row, calling fn for every
// data record.
func readRecords(path string, comma rune, columns []string, fn func(p *recordParser, rec []string)) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "failed to open table")
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = comma
	r.Comment = '#'
	r.FieldsPerRecord = len(columns)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return errors.Wrapf(ErrMalformedTable, "%s: empty file", path)
	}
	if err != nil {
		return errors.Wrapf(ErrMalformedTable, "%s: header: %v", path, err)
	}
	checkHeader(path, header, columns)

	p := &recordParser{path: path, columns: columns}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrapf(ErrMalformedTable, "%s: %v", path, err)
		}
		p.line, _ = r.FieldPos(0)
		fn(p, rec)
		if p.err != nil {
			return p.err
		}
	}
	return nil
}

func checkHeader(path string, header, columns []string) {
	for i, name := range header {
		if !strings.EqualFold(strings.TrimSpace(name), columns[i]) {
			logger.L().Warnf("Table %s: column %d is `%s`, expected `%s`", path, i+1, name, columns[i])
		}
	}
}

// LoadDarkening reads a `;` delimited limb- or gravity-darkening table.
func LoadDarkening(path string, kind Kind) (*DarkeningTable, error) {
	columns := limbColumns
	if kind == GravityDarkening {
		columns = gravityColumns
	}

	t := &DarkeningTable{Kind: kind, Path: path}
	err := readRecords(path, ';', columns, func(p *recordParser, rec []string) {
		row := DarkeningRow{
			Logg:            p.float32(rec, 0),
			Temperature:     p.float32(rec, 1),
			Metallicity:     p.float32(rec, 2),
			Microturbulence: p.float32(rec, 3),
			Coefficient:     p.float32(rec, 4),
			Band:            NormalizeBand(p.code(rec, 5)),
		}
		if kind == GravityDarkening {
			row.Mod = p.code(rec, 6)
		} else {
			row.Met = p.code(rec, 6)
			row.Mod = p.code(rec, 7)
		}
		t.Rows = append(t.Rows, row)
	})
	if err != nil {
		return nil, errors.WithMessagef(err, "loading %v table", kind)
	}

	logger.L().Debugf("Loaded %v table %s: %d rows", kind, path, len(t.Rows))
	return t, nil
}

// LoadSimulation reads a `,` delimited first-harmonic simulation table.
func LoadSimulation(path, band string) (*SimulationTable, error) {
	t := &SimulationTable{Band: band, Path: path}
	err := readRecords(path, ',', simulationColumns, func(p *recordParser, rec []string) {
		t.Rows = append(t.Rows, SimulationRow{
			Q:     p.float64(rec, 0),
			F:     p.float64(rec, 1),
			Sin2i: p.float64(rec, 2),
			Teff:  p.float64(rec, 3),
			Logg:  p.float64(rec, 4),
			A1C:   p.float64(rec, 5),
		})
	})
	if err != nil {
		return nil, errors.WithMessagef(err, "loading %s simulation table", band)
	}

	logger.L().Debugf("Loaded %s simulation table %s: %d rows", band, path, len(t.Rows))
	return t, nil
}
