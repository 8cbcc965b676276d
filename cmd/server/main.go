// @title Listerdale Leadership Guide API
// @version 1.0
// @description Chat widget, leadership diagnostic and transcript API.
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"fmt"
	"os"

	"github.com/listerdale/chatbot/internal/infrastructure/config"
	applog "github.com/listerdale/chatbot/internal/infrastructure/log"
	"github.com/spf13/cobra"
)

// version 构建时通过 ldflags 注入
var version = "dev"

func main() {
	var cfg *config.Config

	rootCmd := &cobra.Command{
		Use:           "listerdale",
		Short:         "Listerdale leadership chatbot and diagnostic server",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadConfig()
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			applog.Close()
		},
	}

	cfgFn := func() *config.Config { return cfg }

	serveCmd := newServeCmd(cfgFn)
	rootCmd.RunE = serveCmd.RunE
	rootCmd.AddCommand(
		serveCmd,
		newMigrateCmd(cfgFn),
		newDiagnoseCmd(cfgFn),
		newTranscriptCmd(cfgFn),
		newPromptCmd(cfgFn),
		newModulesCmd(cfgFn),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig 先加载配置（含 .env），再按 LOG_* 初始化日志
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	applog.Init(applog.NewConfigFromEnv())
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
