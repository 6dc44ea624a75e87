/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package utilities

import (
	"strings"
)

// A `flag.Value` compatible Value that accepts a comma separated string
// and produces an array of strings. Surrounding whitespace is trimmed and
// empty elements are dropped.
type CommaValue struct {
	Value *[]string
}

func (v CommaValue) String() string {
	if v.Value != nil {
		return strings.Join(*v.Value, ",")
	}
	return ""
}

func (v CommaValue) Set(s string) error {
	values := []string{}
	for _, value := range strings.Split(s, ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			values = append(values, value)
		}
	}

	*v.Value = values
	return nil
}
