/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package probe

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/Juice-Labs/encprobe/pkg/luid"
)

func TestBuildCommand(t *testing.T) {
	for count := 0; count <= 8; count++ {
		ids := make([]luid.Luid, count)
		for index := range ids {
			ids[index] = luid.Luid(0xdead0000 + uint64(index)*0x11)
		}

		command := BuildCommand("probe", ids)

		if len(command.Args) != count {
			t.Fatalf("expected %d arguments, got %d", count, len(command.Args))
		}

		tokens := strings.Fields(command.String())
		if len(tokens) != count+1 || tokens[0] != "probe" {
			t.Fatalf("unexpected command line %q", command.String())
		}

		for index, id := range ids {
			parsed, err := luid.Parse(tokens[index+1])
			if err != nil || parsed != id {
				t.Errorf("token %d: expected %s, got %q (%v)", index, id, tokens[index+1], err)
			}
		}
	}
}

func TestBuildCommandFormatsLowercaseHex(t *testing.T) {
	command := BuildCommand("probe", []luid.Luid{0x1, 0xABCDEF, 0xffffffffffffffff})

	expected := []string{"1", "abcdef", "ffffffffffffffff"}
	if !reflect.DeepEqual(command.Args, expected) {
		t.Errorf("expected %v, got %v", expected, command.Args)
	}

	if command.String() != "probe 1 abcdef ffffffffffffffff" {
		t.Errorf("unexpected command line %q", command.String())
	}
}

type failingEnumerator struct{}

func (failingEnumerator) Enumerate(fn luid.EnumerateFn) error {
	fn(0, 0x10)
	return errors.New("enumeration failed")
}

func TestCommandFromEnumerator(t *testing.T) {
	command, ids, err := CommandFromEnumerator("probe", luid.Static{0x2, 0x1})
	if err != nil {
		t.Fatal(err)
	}

	if command.String() != "probe 2 1" || len(ids) != 2 {
		t.Errorf("unexpected command %q for %v", command.String(), ids)
	}

	_, _, err = CommandFromEnumerator("probe", failingEnumerator{})
	if !errors.Is(err, ErrEnumerate) {
		t.Errorf("expected ErrEnumerate, got %v", err)
	}
}
