// Package server wires the application together: storage, prompt store,
// AI gateway, providers, autosave, and the HTTP surface.
//
// Lifecycle:
//
//	srv, err := server.New(cfg, logger)
//	err = srv.Run(ctx)   // blocks until ctx is cancelled, then drains
package server
