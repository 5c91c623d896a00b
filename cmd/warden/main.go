package main

import (
	"github.com/spf13/cobra"

	"github.com/go-warden/warden/internal/bootstrap"
	"github.com/go-warden/warden/pkg/version"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "warden",
	Short: "warden is a multi-tenant rbac administration server",
	Long:  "warden is a multi-tenant rbac administration server",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, cleanup, err := bootstrap.Bootstrap(configFile, initApp)
		if err != nil {
			return err
		}
		bootstrap.Run(app, cleanup)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "conf.d/config.toml", "conf file path, e.g. --conf ./conf.d/config.toml")
	rootCmd.AddCommand(version.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		panic(err)
	}
}
