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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TableLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aellph_table_loads_total",
			Help: "Reference table loads, by table kind and status",
		},
		[]string{"table", "status"},
	)

	ComputationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aellph_computations_total",
			Help: "Harmonic amplitude computations, by band and status",
		},
		[]string{"band", "status"},
	)

	UndefinedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aellph_undefined_coefficients_total",
			Help: "Computed coefficients with no defined value, by coefficient and band",
		},
		[]string{"coefficient", "band"},
	)

	ComputationLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "aellph_computation_latency_seconds",
			Help:    "Latency of one harmonic amplitude computation in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	ResultCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aellph_result_cache_hits_total",
			Help: "Queries answered from the result log",
		},
	)
)

// Status label for an error outcome.
func Status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
