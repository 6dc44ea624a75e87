/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package luid

// EnumerateFn is called once per adapter in enumeration order. Returning
// false stops the enumeration.
type EnumerateFn = func(index uint32, id Luid) bool

type Enumerator interface {
	Enumerate(fn EnumerateFn) error
}

// Collect gathers every identifier produced by enumerator, preserving order.
func Collect(enumerator Enumerator) ([]Luid, error) {
	var ids []Luid
	err := enumerator.Enumerate(func(index uint32, id Luid) bool {
		ids = append(ids, id)
		return true
	})

	return ids, err
}

// Static enumerates a fixed list of identifiers.
type Static []Luid

func (ids Static) Enumerate(fn EnumerateFn) error {
	for index, id := range ids {
		if !fn(uint32(index), id) {
			break
		}
	}

	return nil
}
