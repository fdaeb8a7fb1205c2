/*
The api package defines a JSON/POST API for the engine, routed with
gorilla/mux. See routes in ./handler.go.

*/
package api

import (
	"errors"
	"net/http"

	"gridscope/cfg"
	"gridscope/core/pipeline"
)

// APIConfig is used as args to the Start func.
type APIConfig struct {
	// API holds the address and timeouts for the server.
	API cfg.API

	// Pipeline handles all the actual work; must be set.
	Pipeline *pipeline.Pipeline
}

func (c *APIConfig) check() error {
	if c.Pipeline == nil {
		return errors.New("unexpected nil for Pipeline field in APIConfig")
	}
	return nil
}

// Start starts a http.Server which is intended to be used to interface the
// clustering/outlier engine.
func Start(c APIConfig) error {
	if err := c.check(); err != nil {
		return err
	}

	h := handler{pipeline: c.Pipeline}

	s := http.Server{
		Addr:         c.API.Addr,
		Handler:      h.router(),
		ReadTimeout:  c.API.ReadTimeout,
		WriteTimeout: c.API.WriteTimeout,
	}

	return s.ListenAndServe()
}
