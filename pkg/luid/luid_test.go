/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package luid

import (
	"errors"
	"reflect"
	"testing"
)

func TestStringAndParse(t *testing.T) {
	tests := map[Luid]string{
		0x0:                 "0",
		0x1:                 "1",
		0xabcdef:            "abcdef",
		0x00000001_0000d2a4: "10000d2a4",
		0xffffffffffffffff:  "ffffffffffffffff",
	}

	for id, text := range tests {
		if id.String() != text {
			t.Errorf("expected %q, got %q", text, id.String())
		}

		parsed, err := Parse(text)
		if err != nil || parsed != id {
			t.Errorf("Parse(%q) = %v, %v", text, parsed, err)
		}
	}

	parsed, err := Parse(" 0xABCDEF ")
	if err != nil || parsed != 0xabcdef {
		t.Errorf("Parse with prefix = %v, %v", parsed, err)
	}

	for _, invalid := range []string{"", "0x", "xyz", "10000000000000000"} {
		if _, err := Parse(invalid); !errors.Is(err, ErrInvalidLuid) {
			t.Errorf("Parse(%q): expected ErrInvalidLuid, got %v", invalid, err)
		}
	}
}

func TestCollectPreservesOrder(t *testing.T) {
	ids, err := Collect(Static{0x3, 0x1, 0x2})
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(ids, []Luid{0x3, 0x1, 0x2}) {
		t.Errorf("unexpected order %v", ids)
	}

	if !reflect.DeepEqual(Strings(ids), []string{"3", "1", "2"}) {
		t.Errorf("unexpected strings %v", Strings(ids))
	}
}

func TestStaticStopsEarly(t *testing.T) {
	var seen []uint32
	Static{0x1, 0x2, 0x3}.Enumerate(func(index uint32, id Luid) bool {
		seen = append(seen, index)
		return index < 1
	})

	if !reflect.DeepEqual(seen, []uint32{0, 1}) {
		t.Errorf("unexpected indices %v", seen)
	}
}

func TestPCIAddress(t *testing.T) {
	tests := map[string]PCIAddress{
		"0000:03:00.0":     {Domain: 0, Bus: 3, Device: 0, Function: 0},
		"0001:c3:1f.7":     {Domain: 1, Bus: 0xc3, Device: 0x1f, Function: 7},
		"10000:e1:00.0":    {Domain: 0x10000, Bus: 0xe1},
		"PCI_SLOT 65:00.1": {Bus: 0x65, Function: 1},
	}

	for text, expected := range tests {
		address, err := ParsePCIAddress(text)
		if err != nil {
			t.Errorf("ParsePCIAddress(%q) failed with, %v", text, err)
			continue
		}

		if address != expected {
			t.Errorf("ParsePCIAddress(%q): expected %+v, got %+v", text, expected, address)
		}

		if address.Luid().PCIAddress() != address {
			t.Errorf("%s did not survive the luid round trip", address)
		}
	}

	if _, err := ParsePCIAddress("not a slot"); !errors.Is(err, ErrInvalidLuid) {
		t.Errorf("expected ErrInvalidLuid, got %v", err)
	}

	address := PCIAddress{Domain: 0, Bus: 3, Device: 0, Function: 0}
	if address.String() != "0000:03:00.0" {
		t.Errorf("unexpected slot name %q", address.String())
	}

	if address.Luid() != 0x30000 {
		t.Errorf("unexpected luid %s", address.Luid())
	}
}
