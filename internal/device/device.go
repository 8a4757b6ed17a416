// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build unix

// Package device wraps the open, umask and flush primitives used to drive
// small synchronous writes to a storage device.
package device

import (
	"errors"
	"fmt"
	"os"

	"github.com/ncw/directio"
	"golang.org/x/sys/unix"
)

// ErrUnsupportedPlatform is returned by primitives the running platform does
// not provide.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

const (
	// OutputFlags opens a file write-only and append-only, creating or
	// truncating it.
	OutputFlags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC | os.O_APPEND

	// AlignSize is the buffer and block alignment direct I/O needs. Zero
	// means no alignment is required.
	AlignSize = directio.AlignSize
)

// OpenNoFollow opens name, failing if the final path component is a
// symbolic link.
func OpenNoFollow(name string, flag int, perm os.FileMode) (*os.File, error) {
	f, err := os.OpenFile(name, flag|unix.O_NOFOLLOW|unix.O_CLOEXEC, perm)
	if err != nil {
		if errors.Is(err, unix.ELOOP) {
			return nil, fmt.Errorf("refusing to follow symbolic link at %q: %w", name, err)
		}
		return nil, err
	}
	return f, nil
}

// OpenDirect is OpenNoFollow with direct I/O requested: O_DIRECT on Linux,
// F_NOCACHE on macOS. Writes through the returned file need buffers from
// AlignedBlock.
func OpenDirect(name string, flag int, perm os.FileMode) (*os.File, error) {
	f, err := directio.OpenFile(name, flag|unix.O_NOFOLLOW|unix.O_CLOEXEC, perm)
	if err != nil {
		if errors.Is(err, unix.ELOOP) {
			return nil, fmt.Errorf("refusing to follow symbolic link at %q: %w", name, err)
		}
		return nil, err
	}
	return f, nil
}

// AlignedBlock allocates a buffer of size bytes suitable for direct I/O.
func AlignedBlock(size int) []byte {
	return directio.AlignedBlock(size)
}

// IsAligned reports whether size is usable as a direct I/O transfer size.
func IsAligned(size int) bool {
	// AlignSize is a constant zero on some platforms; a variable keeps the
	// modulo below legal there.
	align := AlignSize
	if align == 0 {
		return size > 0
	}
	return size > 0 && size%align == 0
}

// WithUmask runs fn with the process umask set to mask and restores the
// previous umask when fn returns, whatever the outcome.
func WithUmask(mask int, fn func() error) error {
	old := unix.Umask(mask)
	defer unix.Umask(old)
	return fn()
}

// SetUmask sets the process umask and returns the previous one.
func SetUmask(mask int) int {
	return unix.Umask(mask)
}

// Sync schedules all modified filesystem buffers to be written out.
func Sync() {
	unix.Sync()
}

// OpenDir opens the directory at path read-only, failing on anything that
// is not a real directory, symbolic links included.
func OpenDir(path string) (*os.File, error) {
	return OpenNoFollow(path, os.O_RDONLY|unix.O_DIRECTORY, 0)
}

// FullSyncDir issues a full flush through a descriptor on the directory at
// path, which pushes the whole filesystem holding it to stable media.
func FullSyncDir(path string) error {
	d, err := OpenDir(path)
	if err != nil {
		return fmt.Errorf("open %q for flush: %w", path, err)
	}
	defer d.Close()

	return FullSync(d)
}
