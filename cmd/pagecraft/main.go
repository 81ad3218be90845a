package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eringen/pagecraft"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	cfgFile string
	cfg     pagecraft.SiteConfig
)

// configKeys are the SiteConfig keys read from the config file and from
// PAGECRAFT_* environment variables.
var configKeys = []string{
	"name", "url", "description", "addr", "database_path", "home_slug",
	"content_api_url", "content_api_token", "content_timeout", "content_cache_ttl",
	"content_database_path", "admin_password", "session_secret", "cookie_secure",
}

var rootCmd = &cobra.Command{
	Use:   "pagecraft",
	Short: "pagecraft - dynamic page composition engine",
	Long: `pagecraft serves operator-composed pages: each page is an ordered list of
typed sections (hero, featured posts, grids, lists, categories, sidebars) that
are filled with content from a content source at request time.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./pagecraft.yaml)")
	rootCmd.AddCommand(serveCmd, importCmd, seedCmd, versionCmd)
}

func initializeConfig() error {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("pagecraft")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("PAGECRAFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range configKeys {
		if err := v.BindEnv(key); err != nil {
			return err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return fmt.Errorf("read config: %w", err)
		}
	}

	var c pagecraft.SiteConfig
	if err := v.Unmarshal(&c); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	cfg = c.WithDefaults()
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the pagecraft version",
	Args:  cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pagecraft %s\n", version)
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
