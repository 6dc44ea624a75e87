/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package report

import (
	"strconv"

	"gopkg.in/ini.v1"

	"github.com/Juice-Labs/encprobe/pkg/api"
	"github.com/Juice-Labs/encprobe/pkg/errors"
	"github.com/Juice-Labs/encprobe/pkg/logger"
	"github.com/Juice-Labs/encprobe/pkg/luid"
)

const (
	ErrorKey = "error"
	LuidKey  = "luid"

	IsIntelKey      = "is_intel"
	IsDgpuKey       = "is_dgpu"
	SupportsAv1Key  = "supports_av1"
	SupportsHevcKey = "supports_hevc"
)

var (
	ErrEmpty     = errors.New("report: empty report")
	ErrMalformed = errors.New("report: malformed report")
)

var loadOptions = ini.LoadOptions{
	// Error messages are free text and may contain '#' or ';'.
	IgnoreInlineComment: true,
	IgnoreContinuation:  true,
}

// Report is a parsed capability report: an optional global "error" key
// and one section per adapter, named by its position on the command line.
type Report struct {
	file *ini.File
}

// Parse interprets data as a capability report. Zero bytes means the child
// wrote nothing at all and is reported as ErrEmpty rather than as an empty
// report.
func Parse(data []byte) (*Report, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}

	file, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, ErrMalformed.Wrap(err)
	}

	return &Report{file: file}, nil
}

// Error returns the global error message, or "" when the child did not
// report one.
func (report *Report) Error() string {
	global := report.file.Section(ini.DefaultSection)
	if !global.HasKey(ErrorKey) {
		return ""
	}

	return global.Key(ErrorKey).String()
}

// NumSections counts the indexed sections "0", "1", ... up to the first
// missing index. Sections with other names are ignored.
func (report *Report) NumSections() int {
	count := 0
	for report.section(count) != nil {
		count++
	}

	return count
}

// Adapter reads the capability flags of section index. Missing keys and
// values that are not booleans read as false.
func (report *Report) Adapter(index int) (api.AdapterInfo, bool) {
	section := report.section(index)
	if section == nil {
		return api.AdapterInfo{}, false
	}

	return api.AdapterInfo{
		IsIntel:      readBool(section, IsIntelKey),
		IsDgpu:       readBool(section, IsDgpuKey),
		SupportsAv1:  readBool(section, SupportsAv1Key),
		SupportsHevc: readBool(section, SupportsHevcKey),
	}, true
}

// Luid returns the identifier echoed in section index. found is false when
// the section does not carry one.
func (report *Report) Luid(index int) (id luid.Luid, found bool, err error) {
	section := report.section(index)
	if section == nil || !section.HasKey(LuidKey) {
		return 0, false, nil
	}

	id, err = luid.Parse(section.Key(LuidKey).String())
	return id, true, err
}

func (report *Report) section(index int) *ini.Section {
	section, err := report.file.GetSection(strconv.Itoa(index))
	if err != nil {
		return nil
	}

	return section
}

func readBool(section *ini.Section, name string) bool {
	if !section.HasKey(name) {
		return false
	}

	value, err := section.Key(name).Bool()
	if err != nil {
		logger.Debugf("report: section %s: %s is not a boolean, reading as false", section.Name(), name)
		return false
	}

	return value
}
