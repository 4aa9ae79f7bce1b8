package core

import (
	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"

	"github.com/devblok/masterchart/device"
)

// NewQuerier creates a device.Querier over the physical devices of the
// instance, answering surface questions for the given surface
func NewQuerier(instance vk.Instance, surface vk.Surface) device.Querier {
	return &vulkanQuerier{
		instance: instance,
		surface:  surface,
	}
}

type vulkanQuerier struct {
	instance vk.Instance
	surface  vk.Surface
}

var errNotPhysicalDevice = errors.New("candidate is not a Vulkan physical device")

func physicalDevice(c device.Candidate) (vk.PhysicalDevice, error) {
	pd, ok := c.(vk.PhysicalDevice)
	if !ok {
		return nil, errors.Wrapf(errNotPhysicalDevice, "got %T", c)
	}
	return pd, nil
}

// Devices implements interface
func (v *vulkanQuerier) Devices() ([]device.Candidate, error) {
	devices, err := enumerate(func(count *uint32, out []vk.PhysicalDevice) vk.Result {
		return vk.EnumeratePhysicalDevices(v.instance, count, out)
	})
	if err != nil {
		return nil, errors.Wrap(err, "vk.EnumeratePhysicalDevices()")
	}

	candidates := make([]device.Candidate, len(devices))
	for i, d := range devices {
		candidates[i] = d
	}
	return candidates, nil
}

// Properties implements interface
func (v *vulkanQuerier) Properties(c device.Candidate) (device.Properties, error) {
	pd, err := physicalDevice(c)
	if err != nil {
		return device.Properties{}, err
	}

	var properties vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(pd, &properties)
	properties.Deref()

	var features vk.PhysicalDeviceFeatures
	vk.GetPhysicalDeviceFeatures(pd, &features)
	features.Deref()

	return device.Properties{
		Name:          vk.ToString(properties.DeviceName[:]),
		VendorID:      int(properties.VendorID),
		DeviceID:      int(properties.DeviceID),
		DriverVersion: int(properties.DriverVersion),
		APIVersion:    int(properties.ApiVersion),
		Type:          device.DeviceType(properties.DeviceType),
		Features: device.Features{
			GeometryShader:     features.GeometryShader.B(),
			TessellationShader: features.TessellationShader.B(),
			SamplerAnisotropy:  features.SamplerAnisotropy.B(),
		},
	}, nil
}

// Extensions implements interface
func (v *vulkanQuerier) Extensions(c device.Candidate) ([]string, error) {
	pd, err := physicalDevice(c)
	if err != nil {
		return nil, err
	}

	props, err := enumerate(func(count *uint32, out []vk.ExtensionProperties) vk.Result {
		return vk.EnumerateDeviceExtensionProperties(pd, "", count, out)
	})
	if err != nil {
		return nil, errors.Wrap(err, "vk.EnumerateDeviceExtensionProperties()")
	}

	names := make([]string, 0, len(props))
	for _, ext := range props {
		ext.Deref()
		names = append(names, vk.ToString(ext.ExtensionName[:]))
	}
	return names, nil
}

// QueueFamilies implements interface
func (v *vulkanQuerier) QueueFamilies(c device.Candidate) ([]device.QueueFamily, error) {
	pd, err := physicalDevice(c)
	if err != nil {
		return nil, err
	}

	var count uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(pd, &count, nil)
	props := make([]vk.QueueFamilyProperties, count)
	vk.GetPhysicalDeviceQueueFamilyProperties(pd, &count, props)

	families := make([]device.QueueFamily, 0, count)
	for i := uint32(0); i < count; i++ {
		props[i].Deref()

		var supportsPresent vk.Bool32
		if err := vk.Error(vk.GetPhysicalDeviceSurfaceSupport(pd, i, v.surface, &supportsPresent)); err != nil {
			return nil, errors.Wrapf(err, "vk.GetPhysicalDeviceSurfaceSupport(%d)", i)
		}

		families = append(families, device.QueueFamily{
			Index:           int(i),
			QueueCount:      int(props[i].QueueCount),
			Flags:           device.QueueFlags(props[i].QueueFlags),
			SupportsPresent: supportsPresent.B(),
		})
	}
	return families, nil
}

// SurfaceCapabilities implements interface
func (v *vulkanQuerier) SurfaceCapabilities(c device.Candidate) (device.SurfaceCapabilities, error) {
	pd, err := physicalDevice(c)
	if err != nil {
		return device.SurfaceCapabilities{}, err
	}

	var caps vk.SurfaceCapabilities
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceCapabilities(pd, v.surface, &caps)); err != nil {
		return device.SurfaceCapabilities{}, errors.Wrap(err, "vk.GetPhysicalDeviceSurfaceCapabilities()")
	}
	caps.Deref()
	caps.CurrentExtent.Deref()
	caps.MinImageExtent.Deref()
	caps.MaxImageExtent.Deref()

	return device.SurfaceCapabilities{
		MinImageCount:           caps.MinImageCount,
		MaxImageCount:           caps.MaxImageCount,
		CurrentExtent:           extent(caps.CurrentExtent),
		MinImageExtent:          extent(caps.MinImageExtent),
		MaxImageExtent:          extent(caps.MaxImageExtent),
		MaxImageArrayLayers:     caps.MaxImageArrayLayers,
		SupportedTransforms:     uint32(caps.SupportedTransforms),
		CurrentTransform:        uint32(caps.CurrentTransform),
		SupportedCompositeAlpha: uint32(caps.SupportedCompositeAlpha),
	}, nil
}

// SurfaceFormats implements interface
func (v *vulkanQuerier) SurfaceFormats(c device.Candidate) ([]device.SurfaceFormat, error) {
	pd, err := physicalDevice(c)
	if err != nil {
		return nil, err
	}

	formats, err := enumerate(func(count *uint32, out []vk.SurfaceFormat) vk.Result {
		return vk.GetPhysicalDeviceSurfaceFormats(pd, v.surface, count, out)
	})
	if err != nil {
		return nil, errors.Wrap(err, "vk.GetPhysicalDeviceSurfaceFormats()")
	}

	result := make([]device.SurfaceFormat, 0, len(formats))
	for _, f := range formats {
		f.Deref()
		result = append(result, device.SurfaceFormat{
			Format:     device.Format(f.Format),
			ColorSpace: device.ColorSpace(f.ColorSpace),
		})
	}
	return result, nil
}

// PresentModes implements interface
func (v *vulkanQuerier) PresentModes(c device.Candidate) ([]device.PresentMode, error) {
	pd, err := physicalDevice(c)
	if err != nil {
		return nil, err
	}

	modes, err := enumerate(func(count *uint32, out []vk.PresentMode) vk.Result {
		return vk.GetPhysicalDeviceSurfacePresentModes(pd, v.surface, count, out)
	})
	if err != nil {
		return nil, errors.Wrap(err, "vk.GetPhysicalDeviceSurfacePresentModes()")
	}

	result := make([]device.PresentMode, len(modes))
	for i, m := range modes {
		result[i] = device.PresentMode(m)
	}
	return result, nil
}

func extent(e vk.Extent2D) device.Extent2D {
	return device.Extent2D{Width: e.Width, Height: e.Height}
}
