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

//go:build unix && !linux && !darwin

package device

import (
	"fmt"
	"os"
)

// DisableCache reports that the platform offers no way to keep f out of the
// page cache.
func DisableCache(f *os.File) error {
	return fmt.Errorf("disable cache: %w", ErrUnsupportedPlatform)
}

// DropCache does nothing; DisableCache has already reported the missing
// cache control.
func DropCache(f *os.File) error {
	return nil
}

// FullSync falls back to fsync and reports that no stronger flush exists.
func FullSync(f *os.File) error {
	if err := f.Sync(); err != nil {
		return fmt.Errorf("fsync: %w", err)
	}
	return fmt.Errorf("full flush: %w", ErrUnsupportedPlatform)
}
