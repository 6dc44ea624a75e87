/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package appmain

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Juice-Labs/encprobe/pkg/logger"
	"github.com/Juice-Labs/encprobe/pkg/sentry"
	"github.com/Juice-Labs/encprobe/pkg/task"
)

type closable interface {
	Close() error
}

type Config struct {
	Name    string
	Version string

	SentryConfig sentry.ClientOptions
}

const (
	ExitSuccess = 0
	ExitFailure = 1
)

var (
	printVersion = flag.Bool("version", false, "Prints the version and exits")
	envFile      = flag.String("env-file", ".env", "Loads environment variables from the given file when it exists")
)

func Run(config Config, logic task.TaskFn) {
	flag.Parse()

	if *printVersion {
		fmt.Fprintln(os.Stdout, config.Version)
		os.Exit(ExitSuccess)
	}

	err := loadEnv()
	if err == nil {
		err = run(config, logic)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
}

func run(config Config, logic task.TaskFn) error {
	err := sentry.Initialize(config.SentryConfig)
	if err != nil {
		return err
	}
	defer sentry.Close()

	err = logger.Configure()
	if err != nil {
		return err
	}
	defer logger.Close()

	logger.Debug(config.Name, ", v", config.Version)

	// Only available on Windows for cleaning up subprocesses
	job := newJobObject()
	defer job.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	taskManager := task.NewTaskManager(ctx)
	taskManager.GoFn("AppMain", logic)
	err = taskManager.Wait()
	if err != nil {
		logger.Error(err)
		sentry.CaptureError(err)
	}

	return err
}

func loadEnv() error {
	if *envFile == "" {
		return nil
	}

	if _, err := os.Stat(*envFile); err != nil {
		return nil
	}

	return godotenv.Load(*envFile)
}
