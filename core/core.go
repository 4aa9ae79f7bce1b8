package core

import (
	"unsafe"

	"github.com/devblok/masterchart/device"
)

// Window describes the platform window the session presents to.
// It must be created before the session and destroyed after it.
type Window interface {
	// ShouldClose reports whether the user asked to close the window
	ShouldClose() bool

	// PollEvents processes pending window events without blocking
	PollEvents()

	// RequiredInstanceExtensions lists instance extensions needed
	// to present to this window
	RequiredInstanceExtensions() []string

	// CreateSurface creates a presentation surface for the given
	// instance handle and returns the raw surface handle
	CreateSurface(instance interface{}) (unsafe.Pointer, error)

	// FramebufferSize returns the drawable size in pixels
	FramebufferSize() device.Extent2D

	// Destroy releases the window
	Destroy()
}
