// Package cli административные команды turnosctl
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-TurnosService/internal/app"
	"github.com/m04kA/SMC-TurnosService/internal/calendar"
	"github.com/m04kA/SMC-TurnosService/internal/config"
	"github.com/m04kA/SMC-TurnosService/internal/integrations/announcer"
	"github.com/m04kA/SMC-TurnosService/pkg/logger"
)

type rootOptions struct {
	configPath string
}

// NewRootCmd корневая команда turnosctl
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "turnosctl",
		Short:         "Administrative tool for SMC-TurnosService: migrations, seeding, queue rollover",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "config.toml", "path to TOML configuration")

	root.AddCommand(newMigrateCmd(opts))
	root.AddCommand(newSeedCmd(opts))
	root.AddCommand(newResetCmd(opts))
	root.AddCommand(newRolloverCmd(opts))
	root.AddCommand(newStatsCmd(opts))
	root.AddCommand(newNoShowCmd(opts))

	return root
}

// Execute запускает turnosctl с аргументами процесса
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env конфигурация, логгер и собранное приложение для одной команды
type env struct {
	cfg   *config.Config
	log   *logger.Logger
	app   *app.App
	close func()
}

func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Logs.Level), nil
}

// open подключает хранилище и собирает приложение. Метрики и Redis в CLI не используются:
// объявления о вызове здесь не публикуются.
func (o *rootOptions) open(cmd *cobra.Command) (*env, error) {
	cfg, log, err := o.loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	loc, err := calendar.LoadLocation(cfg.Calendar.Timezone)
	if err != nil {
		return nil, err
	}

	storage, closeStorage, err := app.OpenStorage(cfg, nil, log)
	if err != nil {
		return nil, err
	}

	a := app.New(storage, calendar.New(loc), announcer.NewMemoryPublisher(0), nil, app.OptionsFromConfig(cfg), log)

	return &env{cfg: cfg, log: log, app: a, close: closeStorage}, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
