// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package site

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	buildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recipebook_site_build_duration_seconds",
			Help:    "Duration of site builds in seconds",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		},
	)

	buildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipebook_site_builds_total",
			Help: "Total number of site builds by result",
		},
		[]string{"result"},
	)

	pagesRendered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipebook_site_pages_rendered_total",
			Help: "Total number of recipe pages rendered",
		},
	)
)

func recordBuild(err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	buildsTotal.WithLabelValues(result).Inc()
}
