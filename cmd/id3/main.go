package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

type rootCmdConfig struct {
	verbose     bool
	logLevel    string
	logFormat   string
	storeKind   string
	redisAddr   string
	redisDB     int
	redisPrefix string
	logOutput   io.Writer
	logger      *slog.Logger
	ctx         context.Context
	cancelFunc  context.CancelFunc
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "id3",
		Short: "id3 is a tool to grow decision trees with the ID3 algorithm",
		Long:  `A tool to grow decision trees from categorical data, test them, and use them to classify samples`,
	}
	config := &rootCmdConfig{logOutput: os.Stderr}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log at debug level, overriding log-level")
	rootCmd.PersistentFlags().StringVar(&(config.logLevel), "log-level", "warn", "minimum level of the log records to print: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&(config.logFormat), "log-format", "text", "format of the log records: text or json")
	rootCmd.PersistentFlags().StringVar(&(config.storeKind), "store", "file", "where models are saved and loaded from: file (model locations are file paths) or redis (model locations are keys)")
	rootCmd.PersistentFlags().StringVar(&(config.redisAddr), "redis-addr", "localhost:6379", "address of the redis server for the redis store")
	rootCmd.PersistentFlags().IntVar(&(config.redisDB), "redis-db", 0, "redis database for the redis store")
	rootCmd.PersistentFlags().StringVar(&(config.redisPrefix), "redis-prefix", "id3:models", "prefix for the keys of the models on the redis store")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return config.Validate()
	}
	rootCmd.AddCommand(
		versionCmd(),
		growCmd(config),
		classifyCmd(config),
		testCmd(config),
		treeCmd(config),
		datasetCmd(config),
	)
	return rootCmd
}

func (rcc *rootCmdConfig) Validate() error {
	switch rcc.logLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %s", rcc.logLevel)
	}
	switch rcc.logFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %s", rcc.logFormat)
	}
	switch rcc.storeKind {
	case fileStore, redisStore:
	default:
		return fmt.Errorf("unknown model store %s", rcc.storeKind)
	}
	return nil
}

/*
Context returns the context for the command, which is cancelled when
the process receives an interrupt signal.
*/
func (rcc *rootCmdConfig) Context() context.Context {
	rcc.setContextAndCancelFunc()
	return rcc.ctx
}

func (rcc *rootCmdConfig) ContextCancelFunc() context.CancelFunc {
	rcc.setContextAndCancelFunc()
	return rcc.cancelFunc
}

func (rcc *rootCmdConfig) setContextAndCancelFunc() {
	if rcc.ctx == nil {
		rcc.ctx, rcc.cancelFunc = signal.NotifyContext(context.Background(), os.Interrupt)
	}
}
