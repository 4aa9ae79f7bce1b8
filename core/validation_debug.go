//go:build !release
// +build !release

package core

const validationByDefault = true
