//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/go-warden/warden/internal/bootstrap"
)

func initApp(configPath string) (*bootstrap.App, func(), error) {
	panic(wire.Build(
		provideConf,
		provideDatabase,
		provideCache,
		provideRepositories,
		provideTx,
		provideServices,
		provideRouter,
		provideSweeper,
		bootstrap.NewApp,
	))
}
