/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package report

import (
	"io"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/ini.v1"

	"github.com/Juice-Labs/encprobe/pkg/api"
	"github.com/Juice-Labs/encprobe/pkg/luid"
)

// Section holds the keys of one adapter section in the order they are
// written.
type Section = *orderedmap.OrderedMap[string, string]

func NewSection(info api.AdapterInfo) Section {
	section := orderedmap.New[string, string]()
	section.Set(IsIntelKey, strconv.FormatBool(info.IsIntel))
	section.Set(IsDgpuKey, strconv.FormatBool(info.IsDgpu))
	section.Set(SupportsAv1Key, strconv.FormatBool(info.SupportsAv1))
	section.Set(SupportsHevcKey, strconv.FormatBool(info.SupportsHevc))
	return section
}

// NewSectionFor is NewSection with the adapter identifier echoed back, so
// the reader can detect sections that do not line up with its arguments.
func NewSectionFor(id luid.Luid, info api.AdapterInfo) Section {
	section := orderedmap.New[string, string]()
	section.Set(LuidKey, id.String())
	for pair := NewSection(info).Oldest(); pair != nil; pair = pair.Next() {
		section.Set(pair.Key, pair.Value)
	}
	return section
}

// Render writes sections as "0", "1", ... in slice order.
func Render(w io.Writer, sections []Section) error {
	file := ini.Empty(loadOptions)

	for index, section := range sections {
		iniSection, err := file.NewSection(strconv.Itoa(index))
		if err != nil {
			return err
		}

		for pair := section.Oldest(); pair != nil; pair = pair.Next() {
			if _, err = iniSection.NewKey(pair.Key, pair.Value); err != nil {
				return err
			}
		}
	}

	_, err := file.WriteTo(w)
	return err
}

// RenderError writes a report that carries only the global error key.
func RenderError(w io.Writer, message string) error {
	file := ini.Empty(loadOptions)

	_, err := file.Section(ini.DefaultSection).NewKey(ErrorKey, message)
	if err == nil {
		_, err = file.WriteTo(w)
	}

	return err
}
