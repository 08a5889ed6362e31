// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package client

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/oracle/oci-go-sdk/v65/common"
)

// SDK log levels as understood by common.SDKLogger.
const (
	sdkLogInfo    = 1
	sdkLogDebug   = 2
	sdkLogVerbose = 3
)

// sdkLogAdapter satisfies the logger interface common.SetSDKLogger expects.
type sdkLogAdapter struct {
	log   *slog.Logger
	level int
}

// EnableSDKDebugLogging routes the OCI SDK's request/response logging through
// the given slog logger at debug verbosity.
func EnableSDKDebugLogging(log *slog.Logger) error {
	common.SetSDKLogger(&sdkLogAdapter{log: log, level: sdkLogDebug})
	return nil
}

func (a *sdkLogAdapter) LogLevel() int {
	return a.level
}

func (a *sdkLogAdapter) Log(logLevel int, format string, v ...interface{}) error {
	msg := strings.TrimRight(fmt.Sprintf(format, v...), "\n")
	if logLevel >= sdkLogDebug {
		a.log.Debug(msg, "source", "oci-sdk")
	} else {
		a.log.Info(msg, "source", "oci-sdk")
	}
	return nil
}
