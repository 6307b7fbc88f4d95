package main

import (
	"context"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/cli"
	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/config"
	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/logging"
)

func main() {
	cfg := config.Load()
	logging.Setup(logging.SetupParams{Level: cfg.LogLevel, FormatJSON: cfg.LogJSON})

	if err := cli.NewRootCmd(cli.NewApp(cfg)).ExecuteContext(context.Background()); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
