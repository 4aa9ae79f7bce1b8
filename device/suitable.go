// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/slices"
)

// Requirements is what a device must offer to be used
type Requirements struct {
	DeviceType DeviceType
	Features   Features
	Extensions []string
	QueueFlags QueueFlags
}

// Verdict is the outcome of evaluating Requirements on one device.
// Reason is empty for suitable devices.
type Verdict struct {
	Suitable   bool
	Reason     string
	Indices    QueueFamilyIndices
	Properties Properties
}

func reject(format string, args ...interface{}) Verdict {
	return Verdict{Reason: fmt.Sprintf(format, args...), Indices: NoQueueFamilies}
}

// Evaluate decides whether the candidate satisfies the requirements.
// Rules are checked in order and the first failing one is reported:
// device type, features, extensions, surface support, queue families.
// An error means the Querier itself failed.
func (r Requirements) Evaluate(q Querier, c Candidate) (Verdict, error) {
	props, err := q.Properties(c)
	if err != nil {
		return Verdict{}, errors.Wrap(err, "query properties")
	}

	verdict, err := r.evaluate(q, c, props)
	verdict.Properties = props
	return verdict, err
}

func (r Requirements) evaluate(q Querier, c Candidate, props Properties) (Verdict, error) {
	if props.Type != r.DeviceType {
		return reject("device type is %s, need %s", props.Type, r.DeviceType), nil
	}

	if !props.Features.Covers(r.Features) {
		return reject("required features not supported"), nil
	}

	extensions, err := q.Extensions(c)
	if err != nil {
		return Verdict{}, errors.Wrap(err, "query extensions")
	}
	if missing := MissingExtensions(r.Extensions, extensions); len(missing) > 0 {
		return reject("missing extensions: %s", strings.Join(missing, ", ")), nil
	}

	formats, err := q.SurfaceFormats(c)
	if err != nil {
		return Verdict{}, errors.Wrap(err, "query surface formats")
	}
	modes, err := q.PresentModes(c)
	if err != nil {
		return Verdict{}, errors.Wrap(err, "query present modes")
	}
	if len(formats) == 0 || len(modes) == 0 {
		return reject("surface presentation not supported"), nil
	}

	families, err := q.QueueFamilies(c)
	if err != nil {
		return Verdict{}, errors.Wrap(err, "query queue families")
	}
	indices := FindQueueFamilies(families, r.QueueFlags)
	if !indices.IsComplete() {
		return reject("no queue families for graphics and present"), nil
	}

	return Verdict{Suitable: true, Indices: indices}, nil
}

// MissingExtensions returns the required names absent from available,
// in the order they were required
func MissingExtensions(required, available []string) []string {
	var missing []string
	for _, name := range required {
		if !slices.Contains(available, name) {
			missing = append(missing, name)
		}
	}
	return missing
}
