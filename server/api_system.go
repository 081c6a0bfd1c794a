package server

import (
	"context"
	"net/http"

	"github.com/go-home-io/device-monitor/enums"
)

// Performs quick check whether system is OK.
func (s *MonitorServer) ping(writer http.ResponseWriter, _ *http.Request) {
	respondOk(writer)
}

// Reports installation start-up.
func (s *MonitorServer) startup(writer http.ResponseWriter, request *http.Request) {
	timeout, err := queryInt(request, queryTimeout)
	if err != nil {
		respondBadRequest(writer, err)
		return
	}

	if timeout < 0 {
		respondBadRequest(writer, &ErrBadRequest{Reason: "timeout is negative"})
		return
	}

	s.engine.ReportStartup(timeout)
	respondOk(writer)
}

// Reports that installation has finished start-up.
func (s *MonitorServer) startupFinished(writer http.ResponseWriter, _ *http.Request) {
	s.engine.ReportStartupFinished()
	respondOk(writer)
}

// Reports installation shutdown.
func (s *MonitorServer) shutdown(writer http.ResponseWriter, request *http.Request) {
	s.Logger.Info("Installation shutdown reported", logUserToken, userName(request))
	s.engine.ReportShutdown()
	respondOk(writer)
}

// Forwards message to the collector log.
func (s *MonitorServer) log(writer http.ResponseWriter, request *http.Request) {
	level, err := enums.LogLevelString(request.URL.Query().Get(queryLevel))
	if err != nil {
		respondBadRequest(writer, err)
		return
	}

	body, err := readBody(request)
	if err != nil {
		respondBadRequest(writer, err)
		return
	}

	s.engine.Log(string(body), level)
	respondOk(writer)
}

// Runs health sweep.
func (s *MonitorServer) health(writer http.ResponseWriter, request *http.Request) {
	respondOkError(writer, s.engine.CheckHealth(context.WithoutCancel(request.Context())))
}

// Removes monitors of vanished devices.
func (s *MonitorServer) prune(writer http.ResponseWriter, _ *http.Request) {
	respond(writer, map[string]int{"removed": s.engine.Prune()})
}

// Responds with engine snapshot.
func (s *MonitorServer) state(writer http.ResponseWriter, _ *http.Request) {
	respond(writer, s.engine.State())
}
