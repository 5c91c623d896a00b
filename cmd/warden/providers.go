package main

import (
	"github.com/go-warden/warden/internal/engine/conf"
	"github.com/go-warden/warden/internal/engine/repo"
	"github.com/go-warden/warden/internal/engine/router"
	"github.com/go-warden/warden/internal/engine/service"
	"github.com/go-warden/warden/internal/engine/sweeper"
	"github.com/go-warden/warden/pkg/cache"
	"github.com/go-warden/warden/pkg/database"
	"github.com/go-warden/warden/pkg/log"
)

func provideConf(configPath string) conf.AppConfig {
	appConf := conf.NewConf(configPath)
	log.MustInit(&appConf.Log)
	return appConf
}

func provideDatabase(appConf conf.AppConfig) (database.IDatabase, error) {
	db, err := database.NewDatabase(appConf.Database)
	if err != nil {
		return nil, err
	}
	return database.NewGormDB(db), nil
}

func provideCache(appConf conf.AppConfig) (cache.ICache, error) {
	client, err := cache.NewRedis(appConf.Redis)
	if err != nil {
		return nil, err
	}
	return cache.NewRedisCache(client), nil
}

func provideRepositories(db database.IDatabase) *repo.Repositories {
	return repo.NewRepositories(db)
}

func provideTx(db database.IDatabase) repo.Tx {
	return repo.NewTx(db)
}

func provideServices(repos *repo.Repositories, tx repo.Tx, rc cache.ICache, appConf conf.AppConfig) *service.Services {
	return service.NewServices(repos, tx, rc, &appConf)
}

func provideRouter(appConf conf.AppConfig, services *service.Services, rc cache.ICache) *router.Router {
	return router.NewRouter(&appConf.Http, services, rc, &appConf.Minio)
}

func provideSweeper(repos *repo.Repositories, appConf conf.AppConfig) *sweeper.Sweeper {
	return sweeper.NewSweeper(repos, appConf.Sweeper)
}
