package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PastesStored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pastebox_pastes_stored_total",
			Help: "no. of pastes stored, by paste type",
		},
		[]string{"type"},
	)
	UploadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pastebox_upload_errors_total",
			Help: "no. of rejected or failed uploads, by reason",
		},
		[]string{"reason"},
	)
	BytesWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pastebox_bytes_written_total",
		Help: "total paste bytes written to storage",
	})
	PastesServed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pastebox_pastes_served_total",
		Help: "no. of pastes served back to clients",
	})
)
