package kit

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	labelContentType = "content_type"
	labelEntity      = "entity"
)

type CatalogMetrics struct {
	LoadDuration  prometheus.Histogram
	FetchFailures *prometheus.CounterVec
	Entities      *prometheus.GaugeVec
}

func NewCatalogMetrics(reg *prometheus.Registry) *CatalogMetrics {
	m := &CatalogMetrics{
		LoadDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name: "catalog_bulk_load_duration_seconds",
				Help: "Duration of catalog bulk loads",
			},
		),
		FetchFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_fetch_failures_total",
				Help: "Per-content-type fetch failures degraded to empty slices",
			},
			[]string{labelContentType},
		),
		Entities: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "catalog_entities",
				Help: "Entity counts in the current snapshot",
			},
			[]string{labelEntity},
		),
	}

	reg.MustRegister(m.LoadDuration, m.FetchFailures, m.Entities)
	return m
}

func (m *CatalogMetrics) ObserveCounts(movies, genres, directors, actors, reviews int) {
	m.Entities.WithLabelValues("movies").Set(float64(movies))
	m.Entities.WithLabelValues("genres").Set(float64(genres))
	m.Entities.WithLabelValues("directors").Set(float64(directors))
	m.Entities.WithLabelValues("actors").Set(float64(actors))
	m.Entities.WithLabelValues("reviews").Set(float64(reviews))
}
