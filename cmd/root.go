package cmd

import (
	"fmt"
	"os"
	"strings"

	"carpick/internal/cmd/root"
	"carpick/internal/config"
	"carpick/internal/registry"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:           "carpick",
	Short:         "Pick a vehicle manufacturer, make and model from the vPIC registry",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          root.Run,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.Bool("debug", false, "Enable debug mode")
	flags.Bool("no-tui", false, "Run without TUI, resolving --manufacturer/--make/--model")
	flags.Bool("mock", false, "Use the in-memory registry instead of the vPIC API")
	flags.String("base-url", registry.DefaultBaseURL, "vPIC API root")
	flags.Duration("timeout", 0, "HTTP timeout for registry lookups, 0 for none")
	flags.Float64("rate", 5, "Maximum registry requests per second, 0 for unlimited")
	flags.Int("burst", 5, "Registry request burst")
	flags.Duration("cache-ttl", 0, "Memoize registry lookups for this long, 0 to always fetch")
	flags.String("metrics-addr", "", "Serve Prometheus metrics on this address")
	flags.String("log-file", "", "Write logs to this file")
	flags.String("manufacturer", "", "Manufacturer name or prefix (headless)")
	flags.String("make", "", "Make name or prefix (headless)")
	flags.String("model", "", "Model name or prefix (headless)")

	for _, name := range []string{
		"debug", "no-tui", "mock", "base-url", "timeout", "rate", "burst",
		"cache-ttl", "metrics-addr", "log-file", "manufacturer", "make", "model",
	} {
		viper.BindPFlag(name, flags.Lookup(name))
	}

	// Set default values
	config.SetDefaults(viper.GetViper())
}

func initConfig() {
	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
