/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Juice-Labs/encprobe/pkg/errors"
	"github.com/Juice-Labs/encprobe/pkg/logger"
	"github.com/Juice-Labs/encprobe/pkg/server"
)

func (app *App) initializeEndpoints() {
	app.Server.AddEndpointFunc("GET", "/v1/status", app.getStatusEp)
	app.Server.AddEndpointFunc("GET", "/v1/adapters", app.getAdaptersEp)
	app.Server.AddEndpointFunc("POST", "/v1/probe", app.probeEp)
	app.Server.AddEndpointFunc("GET", "/v1/probe/{id}", app.getProbeEp)
	app.Server.AddEndpointHandler("GET", "/v1/prometheus/metrics",
		promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))
}

func respond[T any](w http.ResponseWriter, code int, obj T) {
	err := server.Respond(w, code, obj)
	if err != nil {
		err = errors.Join(err, server.RespondWithString(w, http.StatusInternalServerError, err.Error()))
		logger.Error(err)
	}
}

func (app *App) getStatusEp(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, app.status())
}

func (app *App) getAdaptersEp(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, app.Last())
}

func (app *App) probeEp(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, app.Probe(r.Context()))
}

func (app *App) getProbeEp(w http.ResponseWriter, r *http.Request) {
	result, found := app.Lookup(mux.Vars(r)["id"])
	if !found {
		err := server.RespondWithString(w, http.StatusNotFound, "probe not found")
		if err != nil {
			logger.Error(err)
		}
		return
	}

	respond(w, http.StatusOK, result)
}
