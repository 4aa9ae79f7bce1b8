// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device_test

import (
	"github.com/cockroachdb/errors"

	"github.com/devblok/masterchart/device"
)

// fakeDevice is synthetic capability data for one physical device
type fakeDevice struct {
	props      device.Properties
	extensions []string
	families   []device.QueueFamily
	caps       device.SurfaceCapabilities
	formats    []device.SurfaceFormat
	modes      []device.PresentMode
}

// fakeQuerier answers from fakeDevice values and counts calls per method
type fakeQuerier struct {
	devices []*fakeDevice
	calls   map[string]int
	failOn  string
}

var errFake = errors.New("fake failure")

func newFakeQuerier(devices ...*fakeDevice) *fakeQuerier {
	return &fakeQuerier{devices: devices, calls: map[string]int{}}
}

func (f *fakeQuerier) hit(name string) error {
	f.calls[name]++
	if f.failOn == name {
		return errFake
	}
	return nil
}

func (f *fakeQuerier) Devices() ([]device.Candidate, error) {
	if err := f.hit("Devices"); err != nil {
		return nil, err
	}
	candidates := make([]device.Candidate, len(f.devices))
	for i, d := range f.devices {
		candidates[i] = d
	}
	return candidates, nil
}

func (f *fakeQuerier) Properties(c device.Candidate) (device.Properties, error) {
	if err := f.hit("Properties"); err != nil {
		return device.Properties{}, err
	}
	return c.(*fakeDevice).props, nil
}

func (f *fakeQuerier) Extensions(c device.Candidate) ([]string, error) {
	if err := f.hit("Extensions"); err != nil {
		return nil, err
	}
	return c.(*fakeDevice).extensions, nil
}

func (f *fakeQuerier) QueueFamilies(c device.Candidate) ([]device.QueueFamily, error) {
	if err := f.hit("QueueFamilies"); err != nil {
		return nil, err
	}
	return c.(*fakeDevice).families, nil
}

func (f *fakeQuerier) SurfaceCapabilities(c device.Candidate) (device.SurfaceCapabilities, error) {
	if err := f.hit("SurfaceCapabilities"); err != nil {
		return device.SurfaceCapabilities{}, err
	}
	return c.(*fakeDevice).caps, nil
}

func (f *fakeQuerier) SurfaceFormats(c device.Candidate) ([]device.SurfaceFormat, error) {
	if err := f.hit("SurfaceFormats"); err != nil {
		return nil, err
	}
	return c.(*fakeDevice).formats, nil
}

func (f *fakeQuerier) PresentModes(c device.Candidate) ([]device.PresentMode, error) {
	if err := f.hit("PresentModes"); err != nil {
		return nil, err
	}
	return c.(*fakeDevice).modes, nil
}

var defaultRequirements = device.Requirements{
	DeviceType: device.DiscreteGPU,
	Features:   device.Features{GeometryShader: true},
	Extensions: []string{"VK_KHR_swapchain"},
	QueueFlags: device.QueueGraphics,
}

// goodDevice satisfies defaultRequirements with one shared queue family
func goodDevice(name string) *fakeDevice {
	return &fakeDevice{
		props: device.Properties{
			Name:     name,
			Type:     device.DiscreteGPU,
			Features: device.Features{GeometryShader: true},
		},
		extensions: []string{"VK_KHR_maintenance1", "VK_KHR_swapchain"},
		families: []device.QueueFamily{
			{Index: 0, QueueCount: 16, Flags: device.QueueGraphics | device.QueueCompute | device.QueueTransfer, SupportsPresent: true},
		},
		caps: device.SurfaceCapabilities{
			MinImageCount:  2,
			MaxImageCount:  8,
			CurrentExtent:  device.Extent2D{Width: 800, Height: 600},
			MinImageExtent: device.Extent2D{Width: 1, Height: 1},
			MaxImageExtent: device.Extent2D{Width: 4096, Height: 4096},
		},
		formats: []device.SurfaceFormat{{Format: device.FormatB8G8R8A8Unorm, ColorSpace: device.ColorSpaceSrgbNonlinear}},
		modes:   []device.PresentMode{device.PresentModeFifo, device.PresentModeMailbox},
	}
}
