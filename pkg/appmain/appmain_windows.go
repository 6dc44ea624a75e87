/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package appmain

import (
	"os"

	"github.com/kolesnikovae/go-winjob"

	"github.com/Juice-Labs/encprobe/pkg/logger"
	pkgWinjob "github.com/Juice-Labs/encprobe/pkg/winjob"
)

type jobObject struct {
	object *winjob.JobObject
}

func (job *jobObject) Close() error {
	if job.object != nil {
		return job.object.Close()
	}

	return nil
}

// Puts this process in a kill-on-close job so probe children die with it.
func newJobObject() closable {
	process, err := os.FindProcess(os.Getpid())
	if err != nil {
		logger.Error("unable to find own process, ", err)
		return &jobObject{}
	}

	job, err := pkgWinjob.KillOnClose(process)
	if err != nil {
		logger.Error("unable to create job object, ", err)
		return &jobObject{}
	}

	return &jobObject{
		object: job,
	}
}
