package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	"github.com/go-warden/warden/internal/engine/conf"
	"github.com/go-warden/warden/internal/engine/router"
	"github.com/go-warden/warden/internal/engine/sweeper"
	"github.com/go-warden/warden/pkg/log"
)

type App struct {
	HttpApp *fiber.App
	Sweeper *sweeper.Sweeper
	AppConf conf.AppConfig
}

// InitAppFunc assembles the application from a configuration file.
type InitAppFunc func(configPath string) (*App, func(), error)

func NewApp(rt *router.Router, sw *sweeper.Sweeper, appConf conf.AppConfig) (*App, func(), error) {
	app := &App{
		HttpApp: rt.Router(),
		Sweeper: sw,
		AppConf: appConf,
	}

	cleanup := func() {
		sw.Stop()
	}

	return app, cleanup, nil
}

// Bootstrap builds the App instance and its cleanup function.
func Bootstrap(configFile string, initApp InitAppFunc) (*App, func(), error) {
	return initApp(configFile)
}

// Run starts the app and waits for an exit signal, then shuts down
// gracefully.
func Run(app *App, cleanup func()) {
	appConf := app.AppConf

	if err := app.Sweeper.Start(); err != nil {
		log.Errorf("failed to start sweeper: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	var g errgroup.Group
	g.Go(func() error {
		addr := fmt.Sprintf("%s:%d", appConf.Http.Host, appConf.Http.Port)
		log.Infow("HTTP listener started", "address", addr)
		return app.HttpApp.Listen(addr)
	})

	sig := <-quit
	log.Infof("received signal: %v, shutting down gracefully", sig)

	timeout := time.Duration(appConf.Http.ShutdownTimeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := app.HttpApp.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorf("HTTP server shutdown error: %v", err)
	}
	if err := g.Wait(); err != nil {
		log.Errorf("HTTP listener failed: %v", err)
	}

	cleanup()
	log.Info("server shutdown complete")
}
