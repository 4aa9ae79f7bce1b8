// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device

import (
	"github.com/cockroachdb/errors"
)

// Querier reads capability data reported by the graphics runtime. A Querier
// is bound to one presentation surface, so present support, surface
// formats and present modes are answered for that surface.
//
// Implementations must not cache: every call reflects the current state of
// the device and surface. Empty slices are valid answers.
type Querier interface {
	// Devices lists physical devices in platform order
	Devices() ([]Candidate, error)

	// Properties returns type, identification and optional features
	Properties(Candidate) (Properties, error)

	// Extensions returns the names of supported device extensions
	Extensions(Candidate) ([]string, error)

	// QueueFamilies returns the queue families in index order
	QueueFamilies(Candidate) ([]QueueFamily, error)

	// SurfaceCapabilities returns the surface limits on this device
	SurfaceCapabilities(Candidate) (SurfaceCapabilities, error)

	// SurfaceFormats returns supported formats in platform order
	SurfaceFormats(Candidate) ([]SurfaceFormat, error)

	// PresentModes returns supported present modes in platform order
	PresentModes(Candidate) ([]PresentMode, error)
}

// Capabilities is everything a Querier knows about one device
type Capabilities struct {
	Properties          Properties
	Extensions          []string
	QueueFamilies       []QueueFamily
	SurfaceCapabilities SurfaceCapabilities
	SurfaceFormats      []SurfaceFormat
	PresentModes        []PresentMode
}

// Query collects a full capability snapshot of the candidate
func Query(q Querier, c Candidate) (Capabilities, error) {
	var (
		caps Capabilities
		err  error
	)

	if caps.Properties, err = q.Properties(c); err != nil {
		return Capabilities{}, errors.Wrap(err, "query properties")
	}
	if caps.Extensions, err = q.Extensions(c); err != nil {
		return Capabilities{}, errors.Wrap(err, "query extensions")
	}
	if caps.QueueFamilies, err = q.QueueFamilies(c); err != nil {
		return Capabilities{}, errors.Wrap(err, "query queue families")
	}
	if caps.SurfaceCapabilities, err = q.SurfaceCapabilities(c); err != nil {
		return Capabilities{}, errors.Wrap(err, "query surface capabilities")
	}
	if caps.SurfaceFormats, err = q.SurfaceFormats(c); err != nil {
		return Capabilities{}, errors.Wrap(err, "query surface formats")
	}
	if caps.PresentModes, err = q.PresentModes(c); err != nil {
		return Capabilities{}, errors.Wrap(err, "query present modes")
	}
	return caps, nil
}

// Report describes a device and the verdict of the requirements on it
type Report struct {
	Capabilities
	Suitable bool
	Reason   string `json:",omitempty"`
}

// Describe builds a report for every device the Querier knows about
func Describe(q Querier, reqs Requirements) ([]Report, error) {
	candidates, err := q.Devices()
	if err != nil {
		return nil, errors.Wrap(err, "enumerate devices")
	}

	reports := make([]Report, 0, len(candidates))
	for _, c := range candidates {
		caps, err := Query(q, c)
		if err != nil {
			return nil, err
		}
		verdict, err := reqs.Evaluate(q, c)
		if err != nil {
			return nil, err
		}
		reports = append(reports, Report{
			Capabilities: caps,
			Suitable:     verdict.Suitable,
			Reason:       verdict.Reason,
		})
	}
	return reports, nil
}
