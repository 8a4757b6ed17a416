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

// Package entropy opens the system random devices and reads fixed-size
// blocks from them.
package entropy

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/googlecloudplatform/smallfile/cfg"
	"github.com/googlecloudplatform/smallfile/internal/device"
)

// ErrShortRead is reported when a source returns fewer bytes than a block.
var ErrShortRead = errors.New("short read from entropy source")

// Source is an open random byte stream.
type Source interface {
	io.ReadCloser
}

// Open opens the device at path read-only. A symbolic link at path is
// rejected so a planted link cannot redirect the reads.
func Open(path string) (Source, error) {
	f, err := device.OpenNoFollow(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("open entropy source %q: %w", path, err)
	}
	return f, nil
}

// OpenDevice opens the strong or the fast device named in c.
func OpenDevice(c cfg.EntropyConfig, strong bool) (Source, error) {
	path := c.FastPath
	if strong {
		path = c.StrongPath
	}
	return Open(path)
}

// ReadBlock fills buf with a single read from r and returns the byte count.
// A short or failed read is returned as an error wrapping ErrShortRead; the
// caller treats it as a warning and keeps going with whatever buf now holds.
func ReadBlock(r io.Reader, buf []byte) (int, error) {
	n, err := r.Read(buf)
	if n < 0 {
		n = 0
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return n, fmt.Errorf("%w: read %d of %d bytes: %v", ErrShortRead, n, len(buf), err)
	}
	if n < len(buf) {
		return n, fmt.Errorf("%w: read %d of %d bytes", ErrShortRead, n, len(buf))
	}
	return n, nil
}
