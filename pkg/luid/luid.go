/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package luid

import (
	"strconv"
	"strings"

	"github.com/Juice-Labs/encprobe/pkg/errors"
)

var (
	ErrInvalidLuid = errors.New("luid: invalid adapter identifier")
	ErrUnsupported = errors.New("luid: adapter enumeration is not supported on this platform")
)

// Luid is an opaque 64-bit adapter identifier, unique for the current boot.
type Luid uint64

// String renders the identifier the way it is passed to the probe child,
// lowercase hexadecimal without a prefix.
func (id Luid) String() string {
	return strconv.FormatUint(uint64(id), 16)
}

func Parse(value string) (Luid, error) {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(strings.TrimPrefix(value, "0x"), "0X")

	id, err := strconv.ParseUint(value, 16, 64)
	if err != nil {
		return 0, ErrInvalidLuid.Wrap(err)
	}

	return Luid(id), nil
}

func ParseAll(values []string) ([]Luid, error) {
	ids := make([]Luid, 0, len(values))
	for _, value := range values {
		id, err := Parse(value)
		if err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, nil
}

func Strings(ids []Luid) []string {
	values := make([]string, len(ids))
	for index, id := range ids {
		values[index] = id.String()
	}

	return values
}
