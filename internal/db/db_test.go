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
	"path/filepath"
	"testing"

	"github.com/antst/aellph/internal/coeff"
)

var testKey = Key{
	TablesDir: "/tables",
	Settings:  "limb_darkening: Claret_LD.tsv",
	Teff:      6000, Logg: 4.3, Fill: 0.5, Incl: 85, MassRatio: 0.8, Band: "V",
}

func openTemp(t *testing.T) *DB {
	t.Helper()
	d, err := Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestSaveAndFindResult(t *testing.T) {
	d := openTemp(t)
	ctx := context.Background()

	r := &Result{
		Key: testKey,
		A1c: NullCoeff(coeff.Some(0.0123)),
		A2c: NullCoeff(coeff.Some(-0.0042)),
		A3c: NullCoeff(coeff.None()),
	}
	id, err := d.SaveResult(ctx, r)
	if err != nil {
		t.Fatalf("SaveResult: %v", err)
	}
	if id == 0 || r.ID != id {
		t.Fatalf("SaveResult id = %v, r.ID = %v", id, r.ID)
	}

	got, ok, err := d.FindResult(ctx, testKey)
	if err != nil || !ok {
		t.Fatalf("FindResult = %v, %v", ok, err)
	}
	if got.ID != id {
		t.Errorf("ID = %v, want %v", got.ID, id)
	}
	if v, ok := Coeff(got.A1c).Get(); !ok || v != 0.0123 {
		t.Errorf("a1c = %v, want 0.0123", Coeff(got.A1c))
	}
	if v, ok := Coeff(got.A2c).Get(); !ok || v != -0.0042 {
		t.Errorf("a2c = %v, want -0.0042", Coeff(got.A2c))
	}
	if Coeff(got.A3c).IsDefined() {
		t.Errorf("a3c = %v, want undefined", Coeff(got.A3c))
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not stored")
	}
}

func TestFindResultMisses(t *testing.T) {
	d := openTemp(t)
	ctx := context.Background()

	if _, err := d.SaveResult(ctx, &Result{Key: testKey}); err != nil {
		t.Fatalf("SaveResult: %v", err)
	}

	tests := []struct {
		name   string
		modify func(k *Key)
	}{
		{"other band", func(k *Key) { k.Band = "B" }},
		{"other inclination", func(k *Key) { k.Incl = 84.9 }},
		{"other tables", func(k *Key) { k.TablesDir = "/elsewhere" }},
		{"other settings", func(k *Key) { k.Settings = "limb_darkening: other.tsv" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := testKey
			tt.modify(&k)
			_, ok, err := d.FindResult(ctx, k)
			if err != nil {
				t.Fatalf("FindResult: %v", err)
			}
			if ok {
				t.Error("FindResult found a result for different inputs")
			}
		})
	}
}

func TestRecentResults(t *testing.T) {
	d := openTemp(t)
	ctx := context.Background()

	for _, band := range []string{"B", "V", "R"} {
		if _, err := d.SaveResult(ctx, &Result{Key: Key{TablesDir: ".", Teff: 6000, Logg: 4, Fill: 0.5, Incl: 60, MassRatio: 1, Band: band}}); err != nil {
			t.Fatalf("SaveResult: %v", err)
		}
	}

	rs, err := d.RecentResults(ctx, 2)
	if err != nil {
		t.Fatalf("RecentResults: %v", err)
	}
	if len(rs) != 2 || rs[0].Band != "R" || rs[1].Band != "V" {
		t.Errorf("RecentResults = %+v, want R then V", rs)
	}
}

func TestControlValue(t *testing.T) {
	d := openTemp(t)
	ctx := context.Background()

	if v, err := d.ControlValue(ctx, "log_level", "info"); err != nil || v != "info" {
		t.Fatalf("ControlValue default = %q, %v", v, err)
	}
	for _, want := range []string{"debug", "warn"} {
		if err := d.SetControlValue(ctx, "log_level", want); err != nil {
			t.Fatalf("SetControlValue: %v", err)
		}
		if v, err := d.ControlValue(ctx, "log_level", "info"); err != nil || v != want {
			t.Errorf("ControlValue = %q, %v, want %q", v, err, want)
		}
	}
}

func TestOpenBadPath(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing", "dir", "x.db")); err == nil {
		t.Error("Open in a missing directory should fail")
	}
}
