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

// System permissions-related code.
package perms

import (
	"fmt"
	"io/fs"
	"os"
	"syscall"
)

// MyUserAndGroup returns the UID and GID of this process.
func MyUserAndGroup() (uid, gid uint32, err error) {
	signed_uid := os.Getuid()
	signed_gid := os.Getgid()

	// Not sure in what scenarios uid/gid could be returned as negative. The only
	// documented scenario at pkg.go.dev/os#Getuid is windows OS.
	if signed_gid < 0 || signed_uid < 0 {
		err = fmt.Errorf("failed to get uid/gid. UID = %d, GID = %d", signed_uid, signed_gid)
		return
	}

	uid = uint32(signed_uid)
	gid = uint32(signed_gid)

	return
}

// OwnerOf returns the UID owning the file described by info.
func OwnerOf(info fs.FileInfo) (uid uint32, err error) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		err = fmt.Errorf("no ownership information for %q", info.Name())
		return
	}

	uid = stat.Uid
	return
}

// CheckPrivate returns an error unless info describes an entry of the given
// type that is owned by this process's user and carries exactly the
// permission bits perm.
func CheckPrivate(info fs.FileInfo, fileType fs.FileMode, perm fs.FileMode) error {
	if info.Mode().Type() != fileType {
		return fmt.Errorf("%q has type %v, want %v", info.Name(), info.Mode().Type(), fileType)
	}

	if got := info.Mode().Perm(); got != perm {
		return fmt.Errorf("%q has permissions %#o, want %#o", info.Name(), got, perm)
	}

	uid, _, err := MyUserAndGroup()
	if err != nil {
		return err
	}

	owner, err := OwnerOf(info)
	if err != nil {
		return err
	}

	if owner != uid {
		return fmt.Errorf("%q is owned by uid %d, want %d", info.Name(), owner, uid)
	}

	return nil
}
