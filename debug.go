// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hephaistos

import "github.com/gogpu/hephaistos/hal"

// DebugSeverity classifies a validation message reported through the
// debug extension.
type DebugSeverity int

const (
	DebugSeverityVerbose DebugSeverity = iota
	DebugSeverityInfo
	DebugSeverityWarning
	DebugSeverityError
)

// DebugMessage is one validation message forwarded from the backend.
type DebugMessage struct {
	Severity DebugSeverity
	Source   string
	Text     string
}

// DebugOptions configures the extension built by NewDebugExtension.
type DebugOptions struct {
	// MinSeverity suppresses messages below this severity.
	MinSeverity DebugSeverity
	// Callback, if non-nil, is invoked synchronously for each message in
	// addition to logging it through hal.Logger().
	Callback func(DebugMessage)
}

// ExtensionDebug enables backend validation-message forwarding.
const ExtensionDebug = "Debug"

// NewDebugExtension builds the "Debug" extension: when enabled, backend
// validation messages are forwarded through opts.Callback
// and logged via hal.Logger(). Validation never interrupts execution —
// it is a side channel, not a control-flow signal.
func NewDebugExtension(opts DebugOptions) *Extension {
	return &Extension{
		Name:                 ExtensionDebug,
		RequiredCapabilities: []string{ExtensionDebug},
		Finalize: func(ctx *Context) {
			ctx.debugOpts = &opts
		},
	}
}

// IsDebugAvailable reports whether the device exposes validation-message
// forwarding.
func IsDebugAvailable(d hal.Device) bool {
	return d.SupportsCapabilities([]string{ExtensionDebug})
}

// reportDebugMessage is the sink every backend's validation callback
// funnels through: it logs via hal.Logger() and, if configured, invokes
// the caller's DebugOptions.Callback. Never returns an error — debug
// reporting is a side channel per spec.md §7's propagation policy.
func (c *Context) reportDebugMessage(msg DebugMessage) {
	if c.debugOpts != nil && msg.Severity < c.debugOpts.MinSeverity {
		return
	}
	logger := hal.Logger()
	switch msg.Severity {
	case DebugSeverityError:
		logger.Error(msg.Text, "source", msg.Source)
	case DebugSeverityWarning:
		logger.Warn(msg.Text, "source", msg.Source)
	case DebugSeverityInfo:
		logger.Info(msg.Text, "source", msg.Source)
	default:
		logger.Debug(msg.Text, "source", msg.Source)
	}
	if c.debugOpts != nil && c.debugOpts.Callback != nil {
		c.debugOpts.Callback(msg)
	}
}

// DeviceFaultInfo retrieves structured fault data after a device-lost
// error, when the "DeviceFault" extension was enabled at context
// creation. Returns false if no fault info is available.
func (c *Context) DeviceFaultInfo() (DeviceFaultInfo, bool) {
	info, ok := c.device.DeviceFaultInfo()
	return DeviceFaultInfo(info), ok
}
