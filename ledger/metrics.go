// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ticket events counted by the metrics
const (
	EventAcknowledged = "acknowledged"
	EventAggregated   = "aggregated"
	EventLosing       = "losing"
	EventNeglected    = "neglected"
	EventRedeemed     = "redeemed"
	EventRejected     = "rejected"
)

// Metrics - prometheus collectors of a ledger
type Metrics struct {
	tickets        *prometheus.CounterVec
	cachedChannels prometheus.Gauge
}

func newMetrics(namespace string) *Metrics {
	return &Metrics{
		tickets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "tickets_total",
			Help:      "Tickets passing each lifecycle event.",
		}, []string{"event"}),
		cachedChannels: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "unrealized_channels",
			Help:      "Channels tracked by the unrealized balance cache.",
		}),
	}
}

// NewMetrics - create collectors and register them, a nil registerer skips registration
func NewMetrics(namespace string, registerer prometheus.Registerer) (*Metrics, error) {
	m := newMetrics(namespace)
	if nil == registerer {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.tickets, m.cachedChannels} {
		if err := registerer.Register(c); nil != err {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) count(event string, n int) {
	if n > 0 {
		m.tickets.WithLabelValues(event).Add(float64(n))
	}
}

// TicketEvents - current value of an event counter
func (m *Metrics) TicketEvents(event string) prometheus.Counter {
	return m.tickets.WithLabelValues(event)
}
