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

package common

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// GetKernelVersion returns the kernel version.
func GetKernelVersion() (string, error) {
	cmd := exec.Command("uname", "-r")
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	kernelVersion := strings.TrimSpace(string(out))
	return kernelVersion, nil
}

// kernelVersion is just a wrapper over GetKernelVersion. This allows us to
// mock it in the unit test of HostDescription.
var kernelVersion = func() (string, error) {
	return GetKernelVersion()
}

// HostDescription names the platform the run happens on, for reports.
func HostDescription() string {
	kv, err := kernelVersion()
	if err != nil || kv == "" {
		kv = "unknown kernel"
	}
	return fmt.Sprintf("%s/%s %s", runtime.GOOS, runtime.GOARCH, kv)
}
