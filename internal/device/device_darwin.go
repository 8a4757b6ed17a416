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

//go:build darwin

package device

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// DisableCache turns off the unified buffer cache for reads and writes
// through f.
func DisableCache(f *os.File) error {
	if _, err := unix.FcntlInt(f.Fd(), unix.F_NOCACHE, 1); err != nil {
		return fmt.Errorf("fcntl(F_NOCACHE): %w", err)
	}
	return nil
}

// DropCache is a no-op: with F_NOCACHE set the file's pages never stay in
// the unified buffer cache.
func DropCache(f *os.File) error {
	return nil
}

// FullSync asks the drive to flush everything it has buffered to permanent
// storage. fsync alone on macOS stops at the drive's cache. Filesystems that
// reject F_FULLFSYNC still get an fsync, and the rejection is returned.
func FullSync(f *os.File) error {
	if _, err := unix.FcntlInt(f.Fd(), unix.F_FULLFSYNC, 0); err != nil {
		if serr := unix.Fsync(int(f.Fd())); serr != nil {
			return fmt.Errorf("fsync: %w", serr)
		}
		return fmt.Errorf("fcntl(F_FULLFSYNC): %w", err)
	}
	return nil
}
