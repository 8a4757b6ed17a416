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

//go:build linux

package device

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// DisableCache tells the kernel that f's pages will not be reused. Linux has
// no per-descriptor cache switch short of O_DIRECT, so on a fresh file this
// only sets the access pattern; DropCache does the dropping once the data is
// on disk. The direct mode is the only true bypass.
func DisableCache(f *os.File) error {
	if err := unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_NOREUSE); err != nil {
		return fmt.Errorf("fadvise(NOREUSE): %w", err)
	}
	return nil
}

// DropCache evicts f's pages from the page cache. Dirty pages cannot be
// dropped, so call it after FullSync.
func DropCache(f *os.File) error {
	if err := unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_DONTNEED); err != nil {
		return fmt.Errorf("fadvise(DONTNEED): %w", err)
	}
	return nil
}

// FullSync flushes f and then the filesystem holding it. fsync makes the
// block layer issue a cache flush to the drive; syncfs pushes out the rest of
// the filesystem's dirty state, including the journal.
func FullSync(f *os.File) error {
	fd := int(f.Fd())
	if err := unix.Fsync(fd); err != nil {
		return fmt.Errorf("fsync: %w", err)
	}
	if err := unix.Syncfs(fd); err != nil {
		return fmt.Errorf("syncfs: %w", err)
	}
	return nil
}
