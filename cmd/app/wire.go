//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/1DS22AIOO3adarsh/Clear-sky-challenge/internal/bootstrap"
	"github.com/1DS22AIOO3adarsh/Clear-sky-challenge/internal/domain/pollution"
	"github.com/1DS22AIOO3adarsh/Clear-sky-challenge/internal/domain/routing"
	"github.com/1DS22AIOO3adarsh/Clear-sky-challenge/internal/infra/config"
	"github.com/1DS22AIOO3adarsh/Clear-sky-challenge/internal/infra/ors"
	httpiface "github.com/1DS22AIOO3adarsh/Clear-sky-challenge/internal/interface/http"
	"github.com/1DS22AIOO3adarsh/Clear-sky-challenge/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		providePollutionConfig,
		provideHolder,
		provideSampleSource,
		provideRoutingConfig,
		provideORSClient,
		provideRouteCache,
		pollution.NewService,
		routing.NewService,
		wire.Bind(new(routing.RouteFetcher), new(*ors.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
