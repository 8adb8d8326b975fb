package main

import (
	"net/http"
	"os"

	"github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/internal/config"
	"github.com/pdrpinto/gridastar/internal/logging"
	"github.com/pdrpinto/gridastar/internal/vizserver"
	"github.com/pdrpinto/gridastar/render"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("loading config: %v", err)
	}
	log, err := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		logrus.Fatalf("configuring logger: %v", err)
	}

	server := vizserver.New(gridastar.New(gridastar.WithLogger(log)), render.Renderer{}, log,
		vizserver.WithMaxSessions(cfg.VizMaxSessions),
		vizserver.WithSessionTTL(cfg.VizSessionTTL),
	)

	log.Printf("visualisation server listening on %s", cfg.VizAddr)
	log.Fatalln(http.ListenAndServe(cfg.VizAddr, server))
}
