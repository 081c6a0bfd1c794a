// Package server contains monitor control API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-home-io/device-monitor/common"
	"github.com/go-home-io/device-monitor/engine"
	"github.com/go-home-io/device-monitor/enums"
	"github.com/go-home-io/device-monitor/providers"
	"github.com/go-home-io/device-monitor/systems/host"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// Logger system representation.
	logSystem = "server"
	// Logger user token.
	logUserToken = "user"
)

// IMonitorEngine defines engine entry points exposed by the API.
type IMonitorEngine interface {
	ReportStartup(timeoutSeconds int)
	ReportStartupFinished()
	ReportShutdown()
	RegisterNetworkDevice(nameList string)
	RegisterSpot(nameList string)
	RegisterWatchout(nameList string)
	Log(message string, level enums.LogLevel)
	CheckHealth(ctx context.Context) error
	State() *engine.Snapshot
	DeviceStatus(path string) (*providers.StatusMessage, bool)
	Prune() int
}

// IInputMapper defines input mapper operations exposed by the API.
type IInputMapper interface {
	Reset() error
	Aliases() []string
	Value(alias string) (value float64, delta float64, ok bool)
}

// MonitorServer describes control API server.
type MonitorServer struct {
	Settings providers.ISettingsProvider
	Logger   common.ILoggerProvider

	engine    IMonitorEngine
	mapper    IInputMapper
	store     providers.IPropertyStoreProvider
	inventory host.IInventoryProvider
	gatherer  prometheus.Gatherer
	security  providers.ISecurityProvider

	wsSettings websocket.Upgrader
	server     *http.Server
}

// ConstructServer has data required for a new server.
type ConstructServer struct {
	Settings  providers.ISettingsProvider
	Engine    IMonitorEngine
	Mapper    IInputMapper
	Store     providers.IPropertyStoreProvider
	Inventory host.IInventoryProvider
	Gatherer  prometheus.Gatherer
	Security  providers.ISecurityProvider
}

// NewServer constructs a new control API server.
func NewServer(ctor *ConstructServer) *MonitorServer {
	return &MonitorServer{
		Settings:  ctor.Settings,
		Logger:    ctor.Settings.PluginLogger(logSystem, ""),
		engine:    ctor.Engine,
		mapper:    ctor.Mapper,
		store:     ctor.Store,
		inventory: ctor.Inventory,
		gatherer:  ctor.Gatherer,
		security:  ctor.Security,
		wsSettings: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Start launches API server.
func (s *MonitorServer) Start() {
	port := s.Settings.APISettings().Port
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		err := s.server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			s.Logger.Fatal("Failed to start server", err)
		}
	}()

	s.Logger.Info(fmt.Sprintf("Started server on port %d", port))
}

// Stop gracefully shuts the server down.
func (s *MonitorServer) Stop(ctx context.Context) {
	if nil == s.server {
		return
	}

	if err := s.server.Shutdown(ctx); err != nil {
		s.Logger.Error("Failed to stop server", err)
	}
}

// Handler returns root handler with all middlewares.
func (s *MonitorServer) Handler() http.Handler {
	router := mux.NewRouter()
	s.registerAPI(router)

	log := &httpLogger{logger: s.Logger}
	return handlers.RecoveryHandler(handlers.RecoveryLogger(log), handlers.PrintRecoveryStack(true))(
		handlers.CombinedLoggingHandler(log, router))
}

// All API registration.
func (s *MonitorServer) registerAPI(router *mux.Router) {
	publicRouter := router.PathPrefix("/pub").Subrouter()
	publicRouter.HandleFunc("/ping", s.ping).Methods(http.MethodGet)

	if nil != s.gatherer {
		router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	apiRouter := router.PathPrefix(routeAPI).Subrouter()
	apiRouter.HandleFunc("/startup", s.startup).Methods(http.MethodPost)
	apiRouter.HandleFunc("/startup/finished", s.startupFinished).Methods(http.MethodPost)
	apiRouter.HandleFunc("/shutdown", s.shutdown).Methods(http.MethodPost)
	apiRouter.HandleFunc("/log", s.log).Methods(http.MethodPost)
	apiRouter.HandleFunc("/health", s.health).Methods(http.MethodPost)
	apiRouter.HandleFunc("/prune", s.prune).Methods(http.MethodPost)
	apiRouter.HandleFunc("/state", s.state).Methods(http.MethodGet)
	apiRouter.HandleFunc("/mapper", s.mapperValues).Methods(http.MethodGet)
	apiRouter.HandleFunc("/mapper/reset", s.resetMappings).Methods(http.MethodPost)

	apiRouter.HandleFunc(fmt.Sprintf("/register/{%s}", urlCategory), s.register).Methods(http.MethodPost)
	apiRouter.HandleFunc(fmt.Sprintf("/devices/{%s}", urlDevicePath), s.deviceStatus).Methods(http.MethodGet)

	apiRouter.HandleFunc("/inventory", s.addDevice).Methods(http.MethodPut)
	apiRouter.HandleFunc(fmt.Sprintf("/inventory/{%s}/{%s}", urlCategory, urlDeviceName),
		s.removeDevice).Methods(http.MethodDelete)

	apiRouter.HandleFunc(fmt.Sprintf("/property/{%s}", urlPropertyPath), s.setProperty).Methods(http.MethodPut)
	apiRouter.HandleFunc(fmt.Sprintf("/property/{%s}", urlPropertyPath), s.getProperty).Methods(http.MethodGet)
	apiRouter.HandleFunc(fmt.Sprintf("/property/{%s}", urlPropertyPath),
		s.deleteProperty).Methods(http.MethodDelete)
	apiRouter.HandleFunc(fmt.Sprintf("/property/{%s}/event", urlPropertyPath),
		s.publishEvent).Methods(http.MethodPost)

	apiRouter.HandleFunc("/ws", s.handleWS).Methods(http.MethodGet)
	apiRouter.Use(s.logMiddleware)
	if nil != s.security && s.security.Enabled() {
		apiRouter.Use(s.authMiddleware)
	}
}

// Adapts access and recovery logs to the system logger.
type httpLogger struct {
	logger common.ILoggerProvider
}

// Write receives access log lines.
func (l *httpLogger) Write(p []byte) (int, error) {
	l.logger.Debug(strings.TrimSpace(string(p)))
	return len(p), nil
}

// Println receives recovered panics.
func (l *httpLogger) Println(v ...interface{}) {
	l.logger.Warn("Recovered from API panic", common.LogErrorToken, fmt.Sprint(v...))
}
