/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package detect

import (
	"github.com/Juice-Labs/encprobe/pkg/api"
	"github.com/Juice-Labs/encprobe/pkg/errors"
	"github.com/Juice-Labs/encprobe/pkg/luid"
)

const (
	VendorIntel  = "8086"
	VendorNvidia = "10de"
	VendorAmd    = "1002"
)

var (
	ErrUnsupported   = errors.New("detect: capability detection is not supported on this platform")
	ErrUnknownDevice = errors.New("detect: no device for adapter")
)

// Detector answers capability queries for a single adapter at a time.
type Detector interface {
	Detect(id luid.Luid) (api.AdapterInfo, error)
	Close() error
}
