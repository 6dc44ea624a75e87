/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package luid

func NewSystemEnumerator() Enumerator {
	return NewSysfsEnumerator("/sys")
}
