package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/ttpr0/go-catchment/metrics"
	"golang.org/x/exp/slog"
)

func main() {
	config_file := flag.String("config", "./config.yaml", "path to the yaml or toml config file")
	serve := flag.Bool("serve", false, "keep serving catchment requests after the batch run")
	flag.Parse()

	config := ReadConfig(*config_file)
	SetupLogging(os.Stdout, config.LogLevel)

	registry := metrics.DefaultRegistry()
	network, _, err := RunBatch(config, registry)
	if err != nil {
		slog.Error("catchment run failed: " + err.Error())
		os.Exit(1)
	}

	if !*serve && !config.Server.Enabled {
		return
	}
	service := NewCatchmentService(network, registry, config.Routing.Workers)
	app := NewRouter(service, registry)
	slog.Info("Serving on " + config.Server.Address)
	if err := http.ListenAndServe(config.Server.Address, app); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
