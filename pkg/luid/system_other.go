//go:build !linux && !windows

/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package luid

type unsupportedEnumerator struct{}

func (unsupportedEnumerator) Enumerate(fn EnumerateFn) error {
	return ErrUnsupported
}

func NewSystemEnumerator() Enumerator {
	return unsupportedEnumerator{}
}
