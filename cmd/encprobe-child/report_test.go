/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package main

import (
	"bytes"
	"testing"

	"github.com/Juice-Labs/encprobe/cmd/encprobe-child/detect"
	"github.com/Juice-Labs/encprobe/pkg/api"
	"github.com/Juice-Labs/encprobe/pkg/luid"
	"github.com/Juice-Labs/encprobe/pkg/report"
)

type fakeDetector map[luid.Luid]api.AdapterInfo

func (detector fakeDetector) Detect(id luid.Luid) (api.AdapterInfo, error) {
	info, found := detector[id]
	if !found {
		return api.AdapterInfo{}, detect.ErrUnknownDevice
	}

	return info, nil
}

func (fakeDetector) Close() error {
	return nil
}

func parse(t *testing.T, buffer *bytes.Buffer) *report.Report {
	t.Helper()

	parsed, err := report.Parse(buffer.Bytes())
	if err != nil {
		t.Fatalf("unable to parse %q, %v", buffer.String(), err)
	}

	return parsed
}

func TestWriteReport(t *testing.T) {
	intel := api.AdapterInfo{IsIntel: true, SupportsHevc: true}
	nvidia := api.AdapterInfo{IsDgpu: true, SupportsHevc: true, SupportsAv1: true}

	detector := fakeDetector{0x200: intel, 0x10000: nvidia}

	var buffer bytes.Buffer
	err := writeReport(&buffer, []string{"200", "dead", "10000"}, detector)
	if err != nil {
		t.Fatal(err)
	}

	parsed := parse(t, &buffer)
	if parsed.Error() != "" || parsed.NumSections() != 3 {
		t.Fatalf("unexpected report %q", buffer.String())
	}

	expected := []struct {
		id   luid.Luid
		info api.AdapterInfo
	}{
		{0x200, intel},
		{0xdead, api.AdapterInfo{}},
		{0x10000, nvidia},
	}

	for index, entry := range expected {
		info, _ := parsed.Adapter(index)
		if info != entry.info {
			t.Errorf("section %d: expected %+v, got %+v", index, entry.info, info)
		}

		id, found, err := parsed.Luid(index)
		if err != nil || !found || id != entry.id {
			t.Errorf("section %d: expected luid %s, got %s", index, entry.id, id)
		}
	}
}

func TestWriteReportErrors(t *testing.T) {
	tests := map[string][]string{
		"no arguments": nil,
		"invalid":      {"200", "not-hex"},
		"unresolved":   {"1", "2"},
	}

	for name, args := range tests {
		var buffer bytes.Buffer
		err := writeReport(&buffer, args, fakeDetector{0x200: {}})
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}

		parsed := parse(t, &buffer)
		if parsed.Error() == "" || parsed.NumSections() != 0 {
			t.Errorf("%s: expected a global error only, got %q", name, buffer.String())
		}
	}
}
