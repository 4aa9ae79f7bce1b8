package core

import (
	"time"

	"github.com/devblok/masterchart/device"
)

// Configuration defines the global application configuration
type Configuration struct {
	Window   WindowConfiguration
	Instance InstanceConfiguration
	Device   device.Requirements
	Time     TimeConfiguration
}

// WindowConfiguration is used to configure the presentation window
type WindowConfiguration struct {
	Title  string
	Width  uint32
	Height uint32
	Hidden bool
}

// InstanceConfiguration is used to configure the Vulkan instance
type InstanceConfiguration struct {
	ApplicationName    string
	ApplicationVersion uint32
	EngineName         string
	EngineVersion      uint32
	APIVersion         uint32

	Validation ValidationConfiguration
}

// ValidationConfiguration selects the validation layers loaded into the
// instance and the logical device
type ValidationConfiguration struct {
	Enabled bool
	Layers  []string
}

// TimeConfiguration is used to configure time services
type TimeConfiguration struct {
	// EventPollsPerSecond caps how often window events are polled.
	// To unlimit, set to 0
	EventPollsPerSecond int
}

// PollInterval converts the poll rate to the period between polls
func (t TimeConfiguration) PollInterval() time.Duration {
	if t.EventPollsPerSecond <= 0 {
		return time.Nanosecond
	}
	return time.Second / time.Duration(t.EventPollsPerSecond)
}

// Default names and sizes
const (
	DefaultWindowTitle     = "Master Chart Test"
	DefaultWindowWidth     = 800
	DefaultWindowHeight    = 600
	DefaultApplicationName = "Hello Triangle"
	DefaultEngineName      = "No Engine"
	StandardValidation     = "VK_LAYER_LUNARG_standard_validation"
	SwapchainExtension     = "VK_KHR_swapchain"
	DebugReportExtension   = "VK_EXT_debug_report"
)

// DefaultConfiguration returns the configuration the application runs with
func DefaultConfiguration() Configuration {
	return Configuration{
		Window: WindowConfiguration{
			Title:  DefaultWindowTitle,
			Width:  DefaultWindowWidth,
			Height: DefaultWindowHeight,
		},
		Instance: InstanceConfiguration{
			ApplicationName:    DefaultApplicationName,
			ApplicationVersion: makeVersion(1, 0, 0),
			EngineName:         DefaultEngineName,
			EngineVersion:      makeVersion(1, 0, 0),
			APIVersion:         makeVersion(1, 0, 0),
			Validation: ValidationConfiguration{
				Enabled: validationByDefault,
				Layers:  []string{StandardValidation},
			},
		},
		Device: device.Requirements{
			DeviceType: device.DiscreteGPU,
			Features:   device.Features{GeometryShader: true},
			Extensions: []string{SwapchainExtension},
			QueueFlags: device.QueueGraphics,
		},
		Time: TimeConfiguration{
			EventPollsPerSecond: 60,
		},
	}
}

// makeVersion packs a version the way VK_MAKE_VERSION does
func makeVersion(major, minor, patch uint32) uint32 {
	return major<<22 | minor<<12 | patch
}
