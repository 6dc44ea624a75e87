/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package main

import (
	"github.com/Juice-Labs/encprobe/cmd/encprobe/app"
	"github.com/Juice-Labs/encprobe/cmd/internal/build"
	"github.com/Juice-Labs/encprobe/pkg/appmain"
	"github.com/Juice-Labs/encprobe/pkg/task"
)

func main() {
	appmain.Run(appmain.Config{
		Name:    "encprobe",
		Version: build.Version,
	}, func(group task.Group) error {
		cli, err := app.NewApp(app.ConfigFromFlags())
		if err != nil {
			return err
		}

		return cli.Run(group)
	})
}
