// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownFormat is returned for a file extension other than .toml,
	// .yaml or .yml.
	ErrUnknownFormat = errors.New("config: unknown file format")

	// ErrBadSetting signals an unknown key or an out-of-range setting.
	ErrBadSetting = errors.New("config: bad setting")
)

// configErrorf tags err with the file path.
func configErrorf(path string, err error) error {
	return fmt.Errorf("config: %s: %w", path, err)
}
