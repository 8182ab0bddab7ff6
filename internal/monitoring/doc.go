/*
Package monitoring provides Prometheus metrics for the prompt service.

# Overview

Tracks HTTP traffic, AI provider operations, result cache behavior, session
persistence, and WebSocket connections.

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))

	timer := monitoring.NewTimer(metrics, "segmentize")
	// ... call the provider ...
	timer.Stop("success")

# Metrics Endpoint

Expose via the standard Prometheus handler:

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
*/
package monitoring
