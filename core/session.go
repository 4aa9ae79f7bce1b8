package core

import (
	"context"

	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
	vk "github.com/vulkan-go/vulkan"

	"github.com/devblok/masterchart/device"
	"github.com/devblok/masterchart/swapchain"
)

// NewSession creates a session presenting to window. It holds no
// resources until Initialise is called.
func NewSession(cfg Configuration, window Window) *Session {
	return &Session{
		configuration: cfg,
		window:        window,
	}
}

// Session owns every graphics resource of the application, from the
// instance down to the swapchain image views. Resources are released in
// reverse order of creation.
type Session struct {
	configuration Configuration
	window        Window
	releases      releaseStack

	layers        []string
	instance      vk.Instance
	debugCallback vk.DebugReportCallback
	surface       vk.Surface
	querier       device.Querier

	selection     device.Selection
	logicalDevice vk.Device
	graphicsQueue vk.Queue
	presentQueue  vk.Queue

	parameters          swapchain.Parameters
	swapchain           vk.Swapchain
	swapchainImages     []vk.Image
	swapchainImageViews []vk.ImageView
}

// Initialise creates all resources in order. On failure everything
// created so far is released before the error is returned.
func (s *Session) Initialise() error {
	steps := []struct {
		name string
		run  func() error
	}{
		{"instance", s.createInstance},
		{"debug callback", s.createDebugCallback},
		{"surface", s.createSurface},
		{"device selection", s.selectDevice},
		{"logical device", s.createLogicalDevice},
		{"swapchain", s.createSwapchain},
		{"image views", s.createImageViews},
	}

	for _, step := range steps {
		if err := step.run(); err != nil {
			s.releases.unwind()
			return errors.Wrapf(err, "create %s", step.name)
		}
		log.WithField("step", step.name).Info("Created")
	}
	return nil
}

// Run polls window events until the window asks to close or ctx is done
func (s *Session) Run(ctx context.Context) error {
	pacer := NewPacer(s.configuration.Time)
	defer pacer.Stop()

	for !s.window.ShouldClose() {
		s.window.PollEvents()
		if !pacer.Wait(ctx) {
			return ctx.Err()
		}
	}
	log.Info("Window closed")
	return nil
}

// Destroy releases all resources held by the session, most recent first
func (s *Session) Destroy() {
	if s.logicalDevice != nil {
		vk.DeviceWaitIdle(s.logicalDevice)
	}
	s.releases.unwind()
}

// Selection returns the device the session runs on
func (s *Session) Selection() device.Selection {
	return s.selection
}

// Parameters returns the negotiated swapchain parameters
func (s *Session) Parameters() swapchain.Parameters {
	return s.parameters
}

func (s *Session) createInstance() error {
	validation := s.configuration.Instance.Validation

	var available []string
	if validation.Enabled {
		var err error
		if available, err = InstanceLayers(); err != nil {
			return err
		}
	}

	layers, err := ResolveValidation(validation, available)
	if err != nil {
		return err
	}

	extensions := s.window.RequiredInstanceExtensions()
	if validation.Enabled {
		extensions = append(extensions, DebugReportExtension)
	}

	instance, err := NewInstance(s.configuration.Instance, extensions, layers)
	if err != nil {
		return err
	}

	s.layers = layers
	s.instance = instance
	s.releases.push("instance", func() {
		vk.DestroyInstance(s.instance, nil)
		s.instance = nil
	})
	return nil
}

func (s *Session) createDebugCallback() error {
	if !s.configuration.Instance.Validation.Enabled {
		return nil
	}

	callback, err := newDebugCallback(s.instance)
	if err != nil {
		return err
	}

	s.debugCallback = callback
	s.releases.push("debug callback", func() {
		vk.DestroyDebugReportCallback(s.instance, s.debugCallback, nil)
		s.debugCallback = nil
	})
	return nil
}

func (s *Session) createSurface() error {
	pSurface, err := s.window.CreateSurface(s.instance)
	if err != nil {
		return errors.Wrap(err, "window.CreateSurface()")
	}

	s.surface = vk.SurfaceFromPointer(uintptr(pSurface))
	s.querier = NewQuerier(s.instance, s.surface)
	s.releases.push("surface", func() {
		vk.DestroySurface(s.instance, s.surface, nil)
		s.surface = vk.NullSurface
	})
	return nil
}

func (s *Session) selectDevice() error {
	selection, err := device.Select(s.querier, s.configuration.Device)
	if err != nil {
		return err
	}
	s.selection = selection
	return nil
}

func (s *Session) createLogicalDevice() error {
	requests := device.QueueRequests(s.selection.Indices)
	queueInfos := make([]vk.DeviceQueueCreateInfo, 0, len(requests))
	for _, request := range requests {
		queueInfos = append(queueInfos, vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: request.FamilyIndex,
			QueueCount:       uint32(len(request.Priorities)),
			PQueuePriorities: request.Priorities,
		})
	}

	required := s.configuration.Device.Features
	features := vk.PhysicalDeviceFeatures{
		GeometryShader:     vkBool(required.GeometryShader),
		TessellationShader: vkBool(required.TessellationShader),
		SamplerAnisotropy:  vkBool(required.SamplerAnisotropy),
	}

	extensions := safeStrings(s.configuration.Device.Extensions)
	layers := safeStrings(s.layers)
	dci := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       queueInfos,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: extensions,
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     layers,
		PEnabledFeatures:        []vk.PhysicalDeviceFeatures{features},
	}

	pd, err := physicalDevice(s.selection.Device)
	if err != nil {
		return err
	}

	var logicalDevice vk.Device
	if err := vk.Error(vk.CreateDevice(pd, &dci, nil, &logicalDevice)); err != nil {
		return errors.Wrap(err, "vk.CreateDevice()")
	}

	s.logicalDevice = logicalDevice
	s.releases.push("logical device", func() {
		vk.DestroyDevice(s.logicalDevice, nil)
		s.logicalDevice = nil
	})

	vk.GetDeviceQueue(s.logicalDevice, uint32(s.selection.Indices.Graphics), 0, &s.graphicsQueue)
	vk.GetDeviceQueue(s.logicalDevice, uint32(s.selection.Indices.Present), 0, &s.presentQueue)
	return nil
}

func (s *Session) createSwapchain() error {
	caps, err := device.Query(s.querier, s.selection.Device)
	if err != nil {
		return err
	}

	params := swapchain.Negotiate(
		caps.SurfaceCapabilities,
		caps.SurfaceFormats,
		caps.PresentModes,
		s.window.FramebufferSize(),
		s.selection.Indices,
	)

	log.WithFields(log.Fields{
		"format":       params.SurfaceFormat.Format,
		"present_mode": params.PresentMode,
		"extent":       params.Extent,
		"images":       params.ImageCount,
		"sharing":      params.SharingMode,
	}).Info("Swapchain negotiated")

	scci := vk.SwapchainCreateInfo{
		SType:            vk.StructureTypeSwapchainCreateInfo,
		Surface:          s.surface,
		MinImageCount:    params.ImageCount,
		ImageFormat:      vk.Format(params.SurfaceFormat.Format),
		ImageColorSpace:  vk.ColorSpace(params.SurfaceFormat.ColorSpace),
		ImageExtent:      vk.Extent2D{Width: params.Extent.Width, Height: params.Extent.Height},
		ImageArrayLayers: 1,
		ImageUsage:       vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		ImageSharingMode: vk.SharingMode(params.SharingMode),
		PreTransform:     vk.SurfaceTransformFlagBits(params.PreTransform),
		CompositeAlpha:   vk.CompositeAlphaFlagBits(params.CompositeAlpha),
		PresentMode:      vk.PresentMode(params.PresentMode),
		Clipped:          vk.True,
		OldSwapchain:     vk.NullSwapchain,
	}
	if params.SharingMode == swapchain.SharingConcurrent {
		scci.QueueFamilyIndexCount = uint32(len(params.QueueFamilyIndices))
		scci.PQueueFamilyIndices = params.QueueFamilyIndices
	}

	var sc vk.Swapchain
	if err := vk.Error(vk.CreateSwapchain(s.logicalDevice, &scci, nil, &sc)); err != nil {
		return errors.Wrap(err, "vk.CreateSwapchain()")
	}

	s.swapchain = sc
	s.parameters = params
	s.releases.push("swapchain", func() {
		vk.DestroySwapchain(s.logicalDevice, s.swapchain, nil)
		s.swapchain = vk.NullSwapchain
	})

	images, err := enumerate(func(count *uint32, out []vk.Image) vk.Result {
		return vk.GetSwapchainImages(s.logicalDevice, s.swapchain, count, out)
	})
	if err != nil {
		return errors.Wrap(err, "vk.GetSwapchainImages()")
	}
	s.swapchainImages = images
	return nil
}

func (s *Session) createImageViews() error {
	s.releases.push("image views", func() {
		for _, view := range s.swapchainImageViews {
			vk.DestroyImageView(s.logicalDevice, view, nil)
		}
		s.swapchainImageViews = nil
	})

	for idx, image := range s.swapchainImages {
		ivci := vk.ImageViewCreateInfo{
			SType:    vk.StructureTypeImageViewCreateInfo,
			Image:    image,
			ViewType: vk.ImageViewType2d,
			Format:   vk.Format(s.parameters.SurfaceFormat.Format),
			Components: vk.ComponentMapping{
				R: vk.ComponentSwizzleIdentity,
				G: vk.ComponentSwizzleIdentity,
				B: vk.ComponentSwizzleIdentity,
				A: vk.ComponentSwizzleIdentity,
			},
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask:     vk.ImageAspectFlags(vk.ImageAspectColorBit),
				BaseMipLevel:   0,
				LevelCount:     1,
				BaseArrayLayer: 0,
				LayerCount:     1,
			},
		}

		var view vk.ImageView
		if err := vk.Error(vk.CreateImageView(s.logicalDevice, &ivci, nil, &view)); err != nil {
			return errors.Wrapf(err, "vk.CreateImageView(%d)", idx)
		}
		s.swapchainImageViews = append(s.swapchainImageViews, view)
	}
	return nil
}

func vkBool(b bool) vk.Bool32 {
	if b {
		return vk.True
	}
	return vk.False
}
