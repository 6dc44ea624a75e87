/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package app

import (
	"flag"
	"time"

	"github.com/Juice-Labs/encprobe/pkg/probe"
	"github.com/Juice-Labs/encprobe/pkg/utilities"
)

const (
	FormatJson  = "json"
	FormatTable = "table"
)

var (
	probeExe       = flag.String("probe-exe", "", "Path to the probe executable, defaults to "+probe.ExecutableName+" next to this executable")
	maxAdapters    = flag.Int("max-adapters", 16, "Maximum number of adapters to report")
	probeTimeout   = flag.Duration("probe-timeout", probe.DefaultTimeout, "Kills the probe process when it runs longer, 0 waits forever")
	format         = flag.String("format", FormatJson, "Output format, one of json or table")
	metricsFile    = flag.String("metrics-textfile", "", "Writes probe metrics in the Prometheus text format to the given file")
	address        = flag.String("address", "", "Serves probe results on the given address instead of probing once, e.g. 127.0.0.1:43211")
	probeInterval  = flag.Duration("probe-interval", 0, "Re-probes periodically while serving, 0 disables")
	historySize    = flag.Int("history", 16, "Number of probe results kept while serving")
	adapters       []string
	allowedOrigins []string
)

func init() {
	flag.Var(utilities.CommaValue{Value: &adapters}, "adapters", "Comma separated hexadecimal adapter identifiers to probe instead of enumerating")
	flag.Var(utilities.CommaValue{Value: &allowedOrigins}, "allowed-origins", "Comma separated origins allowed by CORS while serving")
}

type Config struct {
	Executable string

	// Adapters overrides enumeration when not empty.
	Adapters []string

	MaxAdapters int
	Timeout     time.Duration

	Format          string
	MetricsTextfile string

	Address        string
	AllowedOrigins []string
	ProbeInterval  time.Duration
	HistorySize    int
}

func ConfigFromFlags() Config {
	return Config{
		Executable:      *probeExe,
		Adapters:        adapters,
		MaxAdapters:     *maxAdapters,
		Timeout:         *probeTimeout,
		Format:          *format,
		MetricsTextfile: *metricsFile,
		Address:         *address,
		AllowedOrigins:  allowedOrigins,
		ProbeInterval:   *probeInterval,
		HistorySize:     *historySize,
	}
}
