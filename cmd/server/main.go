package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

const defaultConfigName = "uploader.config"

// options holds values given on the command line. Zero values mean "not set".
type options struct {
	configPath string
	port       int
	root       string
	logLevel   string
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "resource-uploader",
		Short:         "File upload and static resource server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(opts)
		},
	}

	rootCmd.Flags().StringVar(&opts.configPath, "config", defaultConfigPath(), "Path to the XML or YAML configuration file")
	rootCmd.Flags().IntVar(&opts.port, "port", 0, "Port for the HTTP server (Env: PORT)")
	rootCmd.Flags().StringVar(&opts.root, "root", "", "Storage root directory (Env: STORAGE_ROOT)")
	rootCmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Logging level: debug, info, warn, error (Env: LOG_LEVEL)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "resource-uploader %s (built %s)\n", Version, BuildTime)
		},
	})

	return rootCmd
}

// defaultConfigPath places the config next to the executable
func defaultConfigPath() string {
	exePath, err := os.Executable()
	if err != nil {
		return defaultConfigName
	}
	return filepath.Join(filepath.Dir(exePath), defaultConfigName)
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
