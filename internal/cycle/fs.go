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

package cycle

import (
	"io"
	"os"

	"github.com/googlecloudplatform/smallfile/cfg"
	"github.com/googlecloudplatform/smallfile/internal/device"
)

// dropCache evicts a flushed file's pages in advise mode.
var dropCache = device.DropCache

// FilePerm is the mode of every output file: owner read/write only.
const FilePerm os.FileMode = 0600

// OutputFile is an open output file.
type OutputFile interface {
	io.Writer

	// DisableCache asks the OS to keep this file out of its caches.
	DisableCache() error

	Chmod(mode os.FileMode) error

	// FullSync forces everything written so far, and everything the drive
	// has buffered, to stable media.
	FullSync() error

	Close() error
}

// FS creates and removes output files in the workspace.
type FS interface {
	// Create opens name for append-only writing, creating or truncating it.
	// It must fail if name is a symbolic link.
	Create(name string) (OutputFile, error)

	Remove(name string) error

	// Sync is the generic, filesystem-wide sync.
	Sync()

	// FullSync is the strengthened flush for the filesystem as a whole.
	FullSync() error
}

// NewDiskFS returns an FS for files in dir. In direct mode files are opened
// for direct I/O and writes need aligned buffers.
func NewDiskFS(dir string, mode cfg.CacheBypassMode) FS {
	return &diskFS{dir: dir, mode: mode}
}

type diskFS struct {
	dir  string
	mode cfg.CacheBypassMode
}

func (fs *diskFS) Create(name string) (OutputFile, error) {
	open := device.OpenNoFollow
	if fs.mode == cfg.CacheBypassDirect {
		open = device.OpenDirect
	}

	f, err := open(name, device.OutputFlags, FilePerm)
	if err != nil {
		return nil, err
	}
	return &diskFile{File: f, mode: fs.mode}, nil
}

func (fs *diskFS) Remove(name string) error {
	return os.Remove(name)
}

func (fs *diskFS) Sync() {
	device.Sync()
}

func (fs *diskFS) FullSync() error {
	return device.FullSyncDir(fs.dir)
}

type diskFile struct {
	*os.File
	mode cfg.CacheBypassMode
}

func (f *diskFile) DisableCache() error {
	switch f.mode {
	case cfg.CacheBypassNone:
		return nil
	case cfg.CacheBypassDirect:
		// Already bypassed at open.
		return nil
	}
	return device.DisableCache(f.File)
}

// FullSync flushes the file. In advise mode the now clean pages are then
// dropped from the page cache.
func (f *diskFile) FullSync() error {
	if err := device.FullSync(f.File); err != nil {
		return err
	}
	if f.mode != cfg.CacheBypassAdvise {
		return nil
	}
	return dropCache(f.File)
}
