package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-home-io/device-monitor/common"
	"github.com/go-home-io/device-monitor/engine"
	"github.com/go-home-io/device-monitor/providers"
	"github.com/go-home-io/device-monitor/server"
	"github.com/go-home-io/device-monitor/settings"
	"github.com/go-home-io/device-monitor/systems/config"
	"github.com/go-home-io/device-monitor/systems/host"
	"github.com/go-home-io/device-monitor/systems/mapper"
	"github.com/go-home-io/device-monitor/systems/reporting"
	"github.com/go-home-io/device-monitor/systems/security"
	"github.com/go-home-io/device-monitor/systems/unity"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	options := &settings.StartUpOptions{}
	_, err := flags.Parse(options)
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}

		os.Exit(1)
	}

	s, err := settings.Load(options)
	if err != nil {
		panic(err)
	}

	s.SystemLogger().Info("Starting device monitor", "version", common.MonitorVersion)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	store := host.NewPropertyStore(s.PluginLogger("properties", ""))
	inventory := host.NewInventory(&host.ConstructInventory{
		Logger:  s.PluginLogger("inventory", ""),
		Store:   store,
		Devices: s.DevicesConfig(),
	})

	cfg := config.NewConfigStore(&config.ConstructConfigStore{
		Location: s.MonitorSettings().SettingsFile,
		Logger:   s.PluginLogger("config", ""),
	})

	reporter := reporting.NewReporter(&reporting.ConstructReporter{
		Logger:   s.PluginLogger("reporting", ""),
		Store:    cfg,
		Settings: s.MonitorSettings(),
		Registry: reg,
	})

	mon := engine.NewEngine(&engine.ConstructEngine{
		Settings:   s,
		Reporter:   reporter,
		Config:     cfg,
		Lookup:     inventory,
		Properties: store,
	})

	inputs := mapper.NewMapper(&mapper.ConstructMapper{
		Logger: s.PluginLogger("mapper", ""),
		Store:  store,
		Settings: func() ([]*providers.RawMapping, error) {
			return settings.LoadMappings(options, s.PluginLogger("settings", ""))
		},
	})

	apps := make([]*unity.Connection, 0)
	for _, v := range s.UnityConfig() {
		conn, err := unity.NewConnection(&unity.ConstructConnection{
			Logger:   s.PluginLogger("unity", v.Prefix),
			Store:    store,
			Settings: v,
		})
		if err != nil {
			s.SystemLogger().Error("Failed to start unity connection", err, common.LogNameToken, v.Prefix)
			continue
		}

		apps = append(apps, conn)
	}

	mon.Start()

	var srv *server.MonitorServer
	if !s.APISettings().Disabled {
		srv = server.NewServer(&server.ConstructServer{
			Settings:  s,
			Engine:    mon,
			Mapper:    inputs,
			Store:     store,
			Inventory: inventory,
			Gatherer:  reg,
			Security: security.NewSecurityProvider(&security.ConstructSecurityProvider{
				Logger:    s.PluginLogger("security", ""),
				UsersFile: s.APISettings().UsersFile,
				Roles:     s.APISettings().Roles,
			}),
		})
		srv.Start()
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	s.SystemLogger().Info("Received stop command, exiting")
	if nil != srv {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		srv.Stop(ctx)
		cancel()
	}

	for _, v := range apps {
		v.Close()
	}

	inputs.Close()
	mon.Stop()
	s.SystemLogger().Flush()
}
