/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package build

// Version is replaced at link time with
// -ldflags "-X github.com/Juice-Labs/encprobe/cmd/internal/build.Version=1.2.3".
var Version = "0.0.0-dev"
