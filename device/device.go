// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package device decides which physical rendering device and which queue
// families the application runs on. Everything in here works on plain
// capability data handed over by a Querier, so the rules can be exercised
// without a graphics runtime present.
package device

import (
	"fmt"
	"math"
)

// Candidate is an opaque handle to a physical device. It is owned by the
// graphics runtime and only ever passed back to the Querier that produced it.
type Candidate interface{}

// DeviceType classifies a physical device, values follow VkPhysicalDeviceType
type DeviceType int32

// Known device types
const (
	OtherDevice DeviceType = iota
	IntegratedGPU
	DiscreteGPU
	VirtualGPU
	CPU
)

func (t DeviceType) String() string {
	switch t {
	case IntegratedGPU:
		return "integrated"
	case DiscreteGPU:
		return "discrete"
	case VirtualGPU:
		return "virtual"
	case CPU:
		return "cpu"
	default:
		return "other"
	}
}

// Features lists the optional device features this application cares about
type Features struct {
	GeometryShader     bool
	TessellationShader bool
	SamplerAnisotropy  bool
}

// Covers reports whether every feature set in required is also set in f
func (f Features) Covers(required Features) bool {
	return (!required.GeometryShader || f.GeometryShader) &&
		(!required.TessellationShader || f.TessellationShader) &&
		(!required.SamplerAnisotropy || f.SamplerAnisotropy)
}

// Properties describes a physical device
type Properties struct {
	Name          string
	VendorID      int
	DeviceID      int
	DriverVersion int
	APIVersion    int
	Type          DeviceType
	Features      Features
}

// QueueFlags is a bitmask of queue capabilities, values follow VkQueueFlagBits
type QueueFlags uint32

// Queue capability bits
const (
	QueueGraphics QueueFlags = 1 << iota
	QueueCompute
	QueueTransfer
	QueueSparseBinding
)

// Has reports whether all bits of other are set
func (f QueueFlags) Has(other QueueFlags) bool {
	return f&other == other
}

// QueueFamily is one entry of the queue family list of a device
type QueueFamily struct {
	Index           int
	QueueCount      int
	Flags           QueueFlags
	SupportsPresent bool
}

func (q QueueFamily) String() string {
	return fmt.Sprintf("{ Index: %d Queues: %d Graphics: %v Compute: %v Transfer: %v Present: %v }",
		q.Index, q.QueueCount, q.Flags.Has(QueueGraphics), q.Flags.Has(QueueCompute),
		q.Flags.Has(QueueTransfer), q.SupportsPresent)
}

// Extent2D is a width and height pair in pixels
type Extent2D struct {
	Width  uint32
	Height uint32
}

// UndefinedExtent marks a surface extent left for the application to decide
const UndefinedExtent = math.MaxUint32

// SurfaceCapabilities is a snapshot of what a surface supports on a device.
// It is recomputed on demand and never cached.
type SurfaceCapabilities struct {
	MinImageCount           uint32
	MaxImageCount           uint32
	CurrentExtent           Extent2D
	MinImageExtent          Extent2D
	MaxImageExtent          Extent2D
	MaxImageArrayLayers     uint32
	SupportedTransforms     uint32
	CurrentTransform        uint32
	SupportedCompositeAlpha uint32
}

// Format is a pixel format, values follow VkFormat
type Format int32

// Formats referenced by the negotiation rules
const (
	FormatUndefined     Format = 0
	FormatR8G8B8Unorm   Format = 23
	FormatB8G8R8A8Unorm Format = 44
	FormatB8G8R8A8Srgb  Format = 50
)

// ColorSpace is a presentation color space, values follow VkColorSpaceKHR
type ColorSpace int32

// ColorSpaceSrgbNonlinear is the only color space every platform supports
const ColorSpaceSrgbNonlinear ColorSpace = 0

// SurfaceFormat pairs a pixel format with a color space
type SurfaceFormat struct {
	Format     Format
	ColorSpace ColorSpace
}

// PresentMode is a presentation mode, values follow VkPresentModeKHR
type PresentMode int32

// Present modes
const (
	PresentModeImmediate PresentMode = iota
	PresentModeMailbox
	PresentModeFifo
	PresentModeFifoRelaxed
)

func (m PresentMode) String() string {
	switch m {
	case PresentModeImmediate:
		return "immediate"
	case PresentModeMailbox:
		return "mailbox"
	case PresentModeFifo:
		return "fifo"
	case PresentModeFifoRelaxed:
		return "fifo-relaxed"
	default:
		return fmt.Sprintf("present-mode(%d)", int32(m))
	}
}
