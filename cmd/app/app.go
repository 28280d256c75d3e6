package main

import (
	"os"

	"github.com/sweetslice/go-backend/internal/app"
	config "github.com/sweetslice/go-backend/internal/cfg"
	"github.com/sweetslice/go-backend/pkg/logger"
)

//	@title			Sweet Slice API
//	@version		1.0
//	@description	Cake shop storefront: catalog, cart, orders and accounts.
//	@BasePath		/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

func main() {
	log := logger.NewSlogLogger()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}
