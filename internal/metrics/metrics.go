// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package metrics collects and exposes Prometheus metrics for the site.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records request and cache metrics.
type Collector struct {
	requests     *prometheus.CounterVec
	latency      prometheus.Histogram
	cacheHits    prometheus.Counter
	cacheMisses  prometheus.Counter
	commentsPost prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "weiblog_http_requests_total",
			Help: "HTTP requests by method and status code.",
		}, []string{"method", "status_code"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "weiblog_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "weiblog_page_cache_hits_total",
			Help: "Full-page cache hits.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "weiblog_page_cache_misses_total",
			Help: "Full-page cache misses.",
		}),
		commentsPost: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "weiblog_comments_posted_total",
			Help: "Comments accepted on posts.",
		}),
	}

	reg.MustRegister(
		c.requests,
		c.latency,
		c.cacheHits,
		c.cacheMisses,
		c.commentsPost,
	)

	return c
}

// RecordRequest records one served HTTP request.
func (c *Collector) RecordRequest(method string, statusCode int, duration time.Duration) {
	c.requests.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
	c.latency.Observe(duration.Seconds())
}

// RecordCacheHit records a full-page cache hit.
func (c *Collector) RecordCacheHit() {
	c.cacheHits.Inc()
}

// RecordCacheMiss records a full-page cache miss.
func (c *Collector) RecordCacheMiss() {
	c.cacheMisses.Inc()
}

// RecordCommentPosted records an accepted comment.
func (c *Collector) RecordCommentPosted() {
	c.commentsPost.Inc()
}

// Handler returns the HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
