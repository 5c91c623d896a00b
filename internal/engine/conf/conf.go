package conf

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/go-warden/warden/pkg/cache"
	"github.com/go-warden/warden/pkg/database"
	"github.com/go-warden/warden/pkg/http"
	"github.com/go-warden/warden/pkg/log"
	"github.com/go-warden/warden/pkg/minio"
)

type AppConfig struct {
	Log      log.Conf
	Http     http.Http
	Database database.Database
	Redis    cache.Redis
	Minio    minio.Minio
	Domain   Domain
	Sweeper  Sweeper
}

// Domain controls the two seed roles created when a domain is bootstrapped.
type Domain struct {
	AdminRoleName  string `mapstructure:"adminRoleName"`
	CommonRoleName string `mapstructure:"commonRoleName"`
}

// Sweeper controls the expired-association purge job.
type Sweeper struct {
	Enabled bool   `mapstructure:"enabled"`
	Spec    string `mapstructure:"spec"` // cron expression
}

const (
	defaultAdminRoleName  = "admin"
	defaultCommonRoleName = "member"
	defaultSweeperSpec    = "0 3 * * *"
)

var (
	cfg  AppConfig
	once sync.Once
)

func NewConf(confFile string) AppConfig {
	once.Do(func() {
		var err error
		cfg, err = LoadConfigFile(confFile)
		if err != nil {
			panic(fmt.Sprintf("load conf file error: %s", err))
		}
	})
	return cfg
}

// LoadConfigFile reads, watches and unmarshals the configuration file.
func LoadConfigFile(confFile string) (AppConfig, error) {

	config := viper.New()
	config.SetConfigFile(confFile)
	config.AddConfigPath("./conf.d")
	config.SetConfigName("config")
	config.SetConfigType("toml")
	if err := config.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("failed to read configuration file: %v", err)
	}

	config.WatchConfig()
	config.OnConfigChange(func(e fsnotify.Event) {
		log.Infof("configuration changed, reloading: %s", e.Name)
		if err := config.Unmarshal(&cfg); err != nil {
			log.Errorf("failed to unmarshal configuration file: %v", err)
		}
	})
	if err := config.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal configuration file: %v", err)
	}

	cfg.setDefaults()
	return cfg, nil
}

func (c *AppConfig) setDefaults() {
	if c.Domain.AdminRoleName == "" {
		c.Domain.AdminRoleName = defaultAdminRoleName
	}
	if c.Domain.CommonRoleName == "" {
		c.Domain.CommonRoleName = defaultCommonRoleName
	}
	if c.Sweeper.Spec == "" {
		c.Sweeper.Spec = defaultSweeperSpec
	}
}
