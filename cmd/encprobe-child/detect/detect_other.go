//go:build !linux

/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package detect

func NewDetector() (Detector, error) {
	return nil, ErrUnsupported
}
