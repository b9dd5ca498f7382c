package cmd

import (
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"emberdb/internal/config"
	"emberdb/internal/logger"
	"emberdb/internal/rdb/richimport"
	"emberdb/internal/repl"
	"emberdb/internal/server"

	"github.com/spf13/cobra"
)

// rootCmd represents base command when called without subcommands
var rootCmd = &cobra.Command{
	Use:   "emberdb",
	Short: "A Redis-compatible in-memory database server",
	Long: `A Redis-compatible in-memory database server built in Go.
Supports the core string and stream command set over the RESP wire
protocol, with snapshot persistence and leader/replica replication.`,
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	Run: func(cmd *cobra.Command, args []string) {
		logLevel := logger.LogLevel(getStringFlag(cmd, "log-level", "info"))
		logger.Init(logLevel)

		port := getIntFlag(cmd, "port", 6379)
		settings, err := config.New(
			getStringFlag(cmd, "dir", "./data"),
			getStringFlag(cmd, "dbfilename", "dump.rdb"),
			port,
			getStringFlag(cmd, "replicaof", ""),
		)
		if err != nil {
			logger.Errorf("failed to build settings: %v", err)
			os.Exit(1)
		}

		srv := server.New(server.Config{
			Addr:        "127.0.0.1:" + strconv.Itoa(port),
			Settings:    settings,
			RequirePass: getStringFlag(cmd, "requirepass", ""),
		})

		if importPath := getStringFlag(cmd, "import-rdb", ""); importPath != "" {
			if err := richimport.Import(importPath, srv.App().KS); err != nil {
				logger.Errorf("failed to import rdb file %s: %v", importPath, err)
				os.Exit(1)
			}
			logger.Infof("imported rdb file %s", importPath)
		}

		if err := srv.Start(); err != nil {
			logger.Errorf("failed to start server: %v", err)
			os.Exit(1)
		}
		logger.Infof("server started on %s as %s", srv.Addr(), settings.InstanceType)

		if settings.InstanceType == config.Slave {
			host, masterPort, ok := parseReplicaOf(settings.ReplicaOf)
			if !ok {
				logger.Errorf("invalid --replicaof value %q, expected \"host port\"", settings.ReplicaOf)
			} else {
				slave := repl.NewSlave(host+":"+strconv.Itoa(masterPort), strconv.Itoa(port))
				go func() {
					if err := slave.Connect(); err != nil {
						logger.Errorf("replication to %s:%d failed: %v", host, masterPort, err)
						return
					}
					if err := slave.DrainCommandStream(); err != nil {
						logger.Debugf("replication stream from master ended: %v", err)
					}
				}()
			}
		}

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logger.Info("shutting down server")
		if err := srv.Close(); err != nil {
			logger.Errorf("error closing server: %v", err)
		}
	},
}

// Execute adds child commands to root and sets flags appropriately.
// Called by main.main(). Only needs to happen once to rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().String("log-level", "info", "Log level (debug, info, warn, error, fatal)")
	rootCmd.Flags().String("dir", "./data", "Snapshot directory")
	rootCmd.Flags().String("dbfilename", "dump.rdb", "Snapshot filename within --dir")
	rootCmd.Flags().Int("port", 6379, "Server port")
	rootCmd.Flags().String("requirepass", "", "Password for AUTH command")
	rootCmd.Flags().String("replicaof", "", "Replicate from master (format: \"host port\")")
	rootCmd.Flags().String("import-rdb", "", "Import a foreign RDB dump into the keyspace at startup")
}

func parseReplicaOf(value string) (string, int, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", 0, false
	}
	port, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, false
	}
	return parts[0], port, true
}

// Helper functions for flag parsing
func getStringFlag(cmd *cobra.Command, name, defaultValue string) string {
	if value, err := cmd.Flags().GetString(name); err == nil && value != "" {
		return value
	}
	return defaultValue
}

func getBoolFlag(cmd *cobra.Command, name string) bool {
	if value, err := cmd.Flags().GetBool(name); err == nil {
		return value
	}
	return false
}

func getIntFlag(cmd *cobra.Command, name string, defaultValue int) int {
	if value, err := cmd.Flags().GetInt(name); err == nil {
		return value
	}
	return defaultValue
}
