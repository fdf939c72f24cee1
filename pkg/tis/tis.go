// Package tis binds the macOS Text Input Sources API as a raw
// inputsource.Foreign service.
package tis

import "errors"

var ErrUnavailable = errors.New("text input sources are only available on macOS builds with cgo")
