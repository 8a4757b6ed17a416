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

// Package workspace creates the private directory a run writes its files in.
package workspace

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/googlecloudplatform/smallfile/internal/device"
	"github.com/googlecloudplatform/smallfile/internal/perms"
)

const (
	// DirPerm is the mode of the workspace directory: owner rwx only.
	DirPerm fs.FileMode = 0700

	// RunUmask makes files created during the run default to owner
	// read/write only, no execute.
	RunUmask = 0177
)

// Workspace is the run-private directory. While it is set up, the process
// working directory is inside it and the umask is RunUmask.
type Workspace struct {
	// Absolute path of the directory.
	Path string

	keep          bool
	originalDir   string
	originalUmask int
	finalized     bool
}

// Name returns the workspace directory name for the process with the given
// pid, so that concurrent runs on one host never collide.
func Name(pid int) string {
	return fmt.Sprintf("smallfile.%d", pid)
}

// Setup creates the workspace under parent (the current directory when
// empty) and moves the process into it. A pre-existing entry at the target
// path, of any kind, is an error. On error the working directory and umask
// are left as they were.
func Setup(parent string, keep bool) (w *Workspace, err error) {
	if parent == "" {
		parent = "."
	}

	path, err := filepath.Abs(filepath.Join(parent, Name(os.Getpid())))
	if err != nil {
		return nil, fmt.Errorf("resolve workspace path: %w", err)
	}

	originalDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	// Creation mode alone is subject to the umask, hence the explicit mask
	// and the chmod after.
	err = device.WithUmask(0, func() error {
		return os.Mkdir(path, DirPerm)
	})
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}

	defer func() {
		if err != nil {
			os.Remove(path)
		}
	}()

	d, err := device.OpenDir(path)
	if err != nil {
		return nil, fmt.Errorf("open workspace: %w", err)
	}
	defer d.Close()

	if err = d.Chmod(DirPerm); err != nil {
		return nil, fmt.Errorf("set workspace permissions: %w", err)
	}

	info, err := d.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat workspace: %w", err)
	}
	if err = perms.CheckPrivate(info, fs.ModeDir, DirPerm); err != nil {
		return nil, fmt.Errorf("verify workspace: %w", err)
	}

	if err = d.Chdir(); err != nil {
		return nil, fmt.Errorf("enter workspace: %w", err)
	}

	w = &Workspace{
		Path:          path,
		keep:          keep,
		originalDir:   originalDir,
		originalUmask: device.SetUmask(RunUmask),
	}
	return w, nil
}

// Leftovers lists entries in the workspace matching the glob pattern.
func (w *Workspace) Leftovers(pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(w.Path, pattern))
	if err != nil {
		return nil, fmt.Errorf("list workspace: %w", err)
	}
	return matches, nil
}

// Finalize restores the umask and working directory in effect before Setup
// and, unless the workspace is kept, removes the directory. Only an empty
// directory is removed. Calling Finalize more than once is a no-op.
func (w *Workspace) Finalize() error {
	if w.finalized {
		return nil
	}
	w.finalized = true

	device.SetUmask(w.originalUmask)

	if err := os.Chdir(w.originalDir); err != nil {
		return fmt.Errorf("leave workspace: %w", err)
	}

	if w.keep {
		return nil
	}

	if err := os.Remove(w.Path); err != nil {
		return fmt.Errorf("remove workspace: %w", err)
	}
	return nil
}
