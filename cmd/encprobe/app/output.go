/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package app

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Juice-Labs/encprobe/pkg/api"
)

// Write prints result in the configured format.
func (app *App) Write(w io.Writer, result api.ProbeResult) error {
	switch app.config.Format {
	case FormatTable:
		return writeTable(w, result)
	default:
		return writeJson(w, result)
	}
}

func writeJson(w io.Writer, result api.ProbeResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func writeTable(w io.Writer, result api.ProbeResult) error {
	if result.Error != "" {
		_, err := fmt.Fprintf(w, "probe %s failed: %s\n", result.Id, result.Error)
		return err
	}

	table := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(table, "INDEX\tLUID\tINTEL\tDGPU\tAV1\tHEVC")
	for _, adapter := range result.Adapters {
		fmt.Fprintf(table, "%d\t%s\t%s\t%s\t%s\t%s\n",
			adapter.Index,
			adapter.Luid,
			yesNo(adapter.IsIntel),
			yesNo(adapter.IsDgpu),
			yesNo(adapter.SupportsAv1),
			yesNo(adapter.SupportsHevc))
	}

	return table.Flush()
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}

	return "no"
}
