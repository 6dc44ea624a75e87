/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package api

// AdapterInfo is the capability record for one adapter slot.
type AdapterInfo struct {
	IsIntel bool `json:"isIntel"`

	IsDgpu bool `json:"isDgpu"`

	SupportsAv1 bool `json:"supportsAv1"`

	SupportsHevc bool `json:"supportsHevc"`
}

// Adapter ties a capability record to the identifier it was probed for.
type Adapter struct {
	Index int `json:"index"`

	Luid string `json:"luid"`

	AdapterInfo
}

type ProbeResult struct {
	Id string `json:"id"`

	Adapters []Adapter `json:"adapters"`

	Error string `json:"error,omitempty"`
}

type Status struct {
	State string `json:"state"`

	Version string `json:"version"`

	Hostname string `json:"hostname"`

	LastProbe string `json:"lastProbe,omitempty"`
}
