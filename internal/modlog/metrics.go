// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boardkit Contributors

package modlog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	entriesLogged = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "modlog_entries_total",
		Help: "Total number of moderation actions appended, by kind",
	}, []string{"kind"})

	appendFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "modlog_append_failures_total",
		Help: "Total number of failed appends",
	})

	suppressedDrops = promauto.NewCounter(prometheus.CounterOpts{
		Name: "modlog_suppressed_total",
		Help: "Total number of log calls dropped inside a suppressed scope",
	})

	renderFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "modlog_render_fallback_total",
		Help: "Total number of renders that hit the unknown-kind fallback",
	})
)
