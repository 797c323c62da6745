package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "quebar",
		Short: "QueBar - live workspace and battery status aggregator",
		Long: `QueBar keeps an always-current view of the window manager's workspace
set and the host battery charge, and feeds it to a display renderer.

Features:
  • Persistent, self-healing event subscription to the window manager IPC
  • Full workspace re-query on every event (no incremental state)
  • Periodic battery sampling via UPower
  • Coalesced repaint scheduling with minute-boundary clock updates
  • Optional HTTP/websocket status API for external renderers`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/quebar/config.yaml)")
	rootCmd.PersistentFlags().String("endpoint", "", "window manager IPC endpoint (default is ws://localhost:6123)")
	rootCmd.PersistentFlags().Int("port", 0, "status API port (0 disables the API server)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	// Bind flags to viper
	viper.BindPFlag("endpoint", rootCmd.PersistentFlags().Lookup("endpoint"))
	viper.BindPFlag("server_port", rootCmd.PersistentFlags().Lookup("port"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}
