package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"infinite-experiment/shiplog/internal/cli"
	"infinite-experiment/shiplog/internal/config"
	"infinite-experiment/shiplog/internal/logging"
	"infinite-experiment/shiplog/internal/metrics"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	inv, err := cli.ParseInvocation(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return cli.ExitCode(err)
	}

	v := viper.New()
	if err := inv.BindConfig(v); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return cli.ExitInternalError
	}
	cfg, err := config.Load(v, inv.ConfigFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return cli.ExitInvalidInvocation
	}

	if err := logging.Init(cfg.AppEnv); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return cli.ExitInternalError
	}
	defer logging.Close()
	logging.WithRun(uuid.NewString(), string(inv.Command))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.NewMetricsRegistry()
	execErr := cli.Execute(ctx, inv, cfg, m, os.Stdout)

	if cfg.Metrics.Textfile != "" {
		if err := m.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			logging.Warn("Failed to write metrics textfile", "path", cfg.Metrics.Textfile, "error", err.Error())
		}
	}

	if execErr != nil {
		var invErr *cli.InvocationError
		if errors.As(execErr, &invErr) {
			fmt.Fprintln(os.Stderr, invErr.Message)
		} else {
			fmt.Fprintln(os.Stderr, execErr)
		}
		return cli.ExitCode(execErr)
	}
	return cli.ExitSuccess
}
