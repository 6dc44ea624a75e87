/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package main

import (
	"fmt"
	"io"

	"github.com/Juice-Labs/encprobe/cmd/encprobe-child/detect"
	"github.com/Juice-Labs/encprobe/pkg/logger"
	"github.com/Juice-Labs/encprobe/pkg/luid"
	"github.com/Juice-Labs/encprobe/pkg/report"
)

// writeReport writes one section per argument, in argument order. Adapters
// that cannot be resolved get a section with every capability false so the
// positions of the others do not shift. When none resolve, only the global
// error is written.
func writeReport(w io.Writer, args []string, detector detect.Detector) error {
	if len(args) == 0 {
		return report.RenderError(w, "no adapters given")
	}

	ids, err := luid.ParseAll(args)
	if err != nil {
		return report.RenderError(w, err.Error())
	}

	resolved := 0
	sections := make([]report.Section, 0, len(ids))
	for _, id := range ids {
		info, err := detector.Detect(id)
		if err != nil {
			logger.Warning(err)
		} else {
			resolved++
		}

		sections = append(sections, report.NewSectionFor(id, info))
	}

	if resolved == 0 {
		return report.RenderError(w, fmt.Sprintf("none of the %d adapter(s) could be resolved", len(ids)))
	}

	return report.Render(w, sections)
}
