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

package util

import (
	"fmt"

	"github.com/googlecloudplatform/smallfile/internal/logger"
	"golang.org/x/sys/unix"
)

// GetVolumeBlockSize retrieves the block size of the file system containing the given path.
// It returns the block size in bytes (e.g., 4096).
func GetVolumeBlockSize(path string) (uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, fmt.Errorf("failed to get stats for path %q: %w", path, err)
	}
	// Bsize is int64 on some platforms (like Linux/amd64) and uint32 on others (like darwin).
	// Casting to uint64 ensures consistency.
	return uint64(stat.Bsize), nil
}

// ProbeBlockSize returns the native I/O block size of the filesystem holding
// path, or fallback when the filesystem cannot tell.
func ProbeBlockSize(path string, fallback int) int {
	size, err := GetVolumeBlockSize(path)
	if err != nil {
		logger.Warnf("warning: %v; using default block size %d", err, fallback)
		return fallback
	}
	if size == 0 || size > uint64(maxProbedBlockSize) {
		logger.Warnf("warning: filesystem at %q reports block size %d; using default block size %d", path, size, fallback)
		return fallback
	}
	return int(size)
}

// Anything above this is a bogus statfs answer rather than a block size.
const maxProbedBlockSize = 64 << 20
