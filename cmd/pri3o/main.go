package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/quantmind-br/pri3o/internal/cmd"
	"github.com/quantmind-br/pri3o/internal/config"
	"github.com/quantmind-br/pri3o/internal/core"
	"github.com/quantmind-br/pri3o/internal/logging"
	"github.com/quantmind-br/pri3o/internal/ui"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit code
func run(ctx context.Context, args []string) int {
	cfg, err := config.Load()
	if err != nil {
		ui.PrintError("loading config: %v", err)
		return core.ExitCode(err)
	}

	ui.ApplyColorMode(cfg.Logging.Color)

	log := logging.NewLogger(logging.Config{
		Level:   cfg.Logging.Level,
		LogFile: cfg.Paths.LogFile,
		NoColor: cfg.Logging.Color == "never",
	})

	rootCmd := cmd.NewRootCmd(cfg, log, version, cmd.DefaultEnv())
	rootCmd.SilenceErrors = true
	rootCmd.SetArgs(args)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Debug().Err(err).Msg("command failed")
		ui.PrintError("%v", err)
		return core.ExitCode(err)
	}

	return core.ExitSuccess
}
