// Package swapchain negotiates the parameters a swapchain is created with
// from what the surface reports and what the window asks for.
package swapchain

import (
	"golang.org/x/exp/constraints"

	"github.com/devblok/masterchart/device"
)

// CompositeAlpha bits, values follow VkCompositeAlphaFlagBitsKHR
const (
	CompositeAlphaOpaque         uint32 = 0x1
	CompositeAlphaPreMultiplied  uint32 = 0x2
	CompositeAlphaPostMultiplied uint32 = 0x4
	CompositeAlphaInherit        uint32 = 0x8
)

// SharingMode tells whether swapchain images are owned by one queue family
type SharingMode int32

// Sharing modes, values follow VkSharingMode
const (
	SharingExclusive SharingMode = iota
	SharingConcurrent
)

func (m SharingMode) String() string {
	if m == SharingConcurrent {
		return "concurrent"
	}
	return "exclusive"
}

// Parameters is the negotiated swapchain setup
type Parameters struct {
	SurfaceFormat  device.SurfaceFormat
	PresentMode    device.PresentMode
	Extent         device.Extent2D
	ImageCount     uint32
	PreTransform   uint32
	CompositeAlpha uint32
	SharingMode    SharingMode

	// QueueFamilyIndices is set only for concurrent sharing
	QueueFamilyIndices []uint32
}

var preferredFormat = device.SurfaceFormat{
	Format:     device.FormatB8G8R8A8Unorm,
	ColorSpace: device.ColorSpaceSrgbNonlinear,
}

// ChooseSurfaceFormat picks B8G8R8A8 UNORM with sRGB non-linear color space
// when available. A lone undefined entry means the surface has no
// preference. Otherwise the first reported format is used.
// formats must not be empty.
func ChooseSurfaceFormat(formats []device.SurfaceFormat) device.SurfaceFormat {
	if len(formats) == 1 && formats[0].Format == device.FormatUndefined {
		return preferredFormat
	}

	for _, f := range formats {
		if f == preferredFormat {
			return f
		}
	}
	return formats[0]
}

// ChoosePresentMode prefers mailbox, then immediate, falling back to FIFO
// which is always available
func ChoosePresentMode(modes []device.PresentMode) device.PresentMode {
	best := device.PresentModeFifo
	for _, mode := range modes {
		switch mode {
		case device.PresentModeMailbox:
			return mode
		case device.PresentModeImmediate:
			best = mode
		}
	}
	return best
}

// ChooseExtent uses the surface's current extent unless the surface leaves
// it to the application, in which case the window size is clamped into the
// supported range per dimension
func ChooseExtent(caps device.SurfaceCapabilities, window device.Extent2D) device.Extent2D {
	if caps.CurrentExtent.Width != device.UndefinedExtent {
		return caps.CurrentExtent
	}

	return device.Extent2D{
		Width:  clamp(window.Width, caps.MinImageExtent.Width, caps.MaxImageExtent.Width),
		Height: clamp(window.Height, caps.MinImageExtent.Height, caps.MaxImageExtent.Height),
	}
}

// ChooseImageCount asks for one image above the minimum. A maximum of zero
// means there is no upper limit.
func ChooseImageCount(caps device.SurfaceCapabilities) uint32 {
	count := caps.MinImageCount + 1
	if caps.MaxImageCount > 0 && count > caps.MaxImageCount {
		count = caps.MaxImageCount
	}
	return count
}

var compositeAlphaPreference = []uint32{
	CompositeAlphaOpaque,
	CompositeAlphaPreMultiplied,
	CompositeAlphaPostMultiplied,
	CompositeAlphaInherit,
}

// ChooseCompositeAlpha returns the first supported bit in order of
// preference, or opaque when the surface reports none
func ChooseCompositeAlpha(caps device.SurfaceCapabilities) uint32 {
	for _, bit := range compositeAlphaPreference {
		if caps.SupportedCompositeAlpha&bit != 0 {
			return bit
		}
	}
	return CompositeAlphaOpaque
}

// ChooseSharing shares images concurrently between both queue families
// only when graphics and present live in different families
func ChooseSharing(indices device.QueueFamilyIndices) (SharingMode, []uint32) {
	if indices.Shared() {
		return SharingExclusive, nil
	}
	return SharingConcurrent, indices.Unique()
}

// Negotiate composes every choice into swapchain parameters.
// formats and modes come from a device that passed the suitability rules,
// so neither is empty.
func Negotiate(
	caps device.SurfaceCapabilities,
	formats []device.SurfaceFormat,
	modes []device.PresentMode,
	window device.Extent2D,
	indices device.QueueFamilyIndices,
) Parameters {
	sharing, families := ChooseSharing(indices)
	return Parameters{
		SurfaceFormat:      ChooseSurfaceFormat(formats),
		PresentMode:        ChoosePresentMode(modes),
		Extent:             ChooseExtent(caps, window),
		ImageCount:         ChooseImageCount(caps),
		PreTransform:       caps.CurrentTransform,
		CompositeAlpha:     ChooseCompositeAlpha(caps),
		SharingMode:        sharing,
		QueueFamilyIndices: families,
	}
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
