/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package main

import (
	"flag"
	"os"

	"github.com/Juice-Labs/encprobe/cmd/encprobe-child/detect"
	"github.com/Juice-Labs/encprobe/cmd/internal/build"
	"github.com/Juice-Labs/encprobe/pkg/appmain"
	"github.com/Juice-Labs/encprobe/pkg/logger"
	"github.com/Juice-Labs/encprobe/pkg/report"
	"github.com/Juice-Labs/encprobe/pkg/task"
)

// Reads hexadecimal adapter identifiers from the command line and writes a
// capability report for them to stdout. Logging goes to stderr.
func main() {
	appmain.Run(appmain.Config{
		Name:    "encprobe-child",
		Version: build.Version,
	}, func(group task.Group) error {
		detector, err := detect.NewDetector()
		if err != nil {
			return report.RenderError(os.Stdout, err.Error())
		}
		defer func() {
			if err := detector.Close(); err != nil {
				logger.Warning(err)
			}
		}()

		return writeReport(os.Stdout, flag.Args(), detector)
	})
}
