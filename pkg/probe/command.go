/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package probe

import (
	"strings"

	"github.com/Juice-Labs/encprobe/pkg/luid"
)

// Command is one invocation of the probe process. Argument i is the
// identifier whose capabilities the child reports in section i.
type Command struct {
	Path string
	Args []string
}

func BuildCommand(executable string, ids []luid.Luid) Command {
	return Command{
		Path: executable,
		Args: luid.Strings(ids),
	}
}

func CommandFromEnumerator(executable string, enumerator luid.Enumerator) (Command, []luid.Luid, error) {
	ids, err := luid.Collect(enumerator)
	if err != nil {
		return Command{}, nil, ErrEnumerate.Wrap(err)
	}

	return BuildCommand(executable, ids), ids, nil
}

// String returns the command line: the path followed by one hexadecimal
// token per identifier.
func (command Command) String() string {
	var builder strings.Builder
	builder.WriteString(command.Path)
	for _, arg := range command.Args {
		builder.WriteByte(' ')
		builder.WriteString(arg)
	}

	return builder.String()
}
