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

package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/googlecloudplatform/smallfile/internal/device"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type WorkspaceTest struct {
	suite.Suite
	parent       string
	startDir     string
	startUmask   int
	expectedPath string
}

func TestWorkspaceSuite(t *testing.T) {
	suite.Run(t, new(WorkspaceTest))
}

func (t *WorkspaceTest) SetupTest() {
	var err error
	t.parent, err = filepath.EvalSymlinks(t.T().TempDir())
	require.NoError(t.T(), err)
	t.startDir, err = os.Getwd()
	require.NoError(t.T(), err)
	t.startUmask = device.SetUmask(0022)
	t.expectedPath = filepath.Join(t.parent, Name(os.Getpid()))
}

func (t *WorkspaceTest) TearDownTest() {
	require.NoError(t.T(), os.Chdir(t.startDir))
	device.SetUmask(t.startUmask)
}

func currentUmask() int {
	m := device.SetUmask(0)
	device.SetUmask(m)
	return m
}

func (t *WorkspaceTest) TestName() {
	assert.Equal(t.T(), "smallfile.42", Name(42))
}

func (t *WorkspaceTest) TestSetupAndFinalize() {
	w, err := Setup(t.parent, false)

	require.NoError(t.T(), err)
	assert.Equal(t.T(), t.expectedPath, w.Path)
	info, err := os.Lstat(w.Path)
	require.NoError(t.T(), err)
	assert.True(t.T(), info.IsDir())
	assert.Equal(t.T(), DirPerm, info.Mode().Perm())
	wd, err := os.Getwd()
	require.NoError(t.T(), err)
	wd, err = filepath.EvalSymlinks(wd)
	require.NoError(t.T(), err)
	assert.Equal(t.T(), w.Path, wd)
	assert.Equal(t.T(), RunUmask, currentUmask())

	// Files created with a permissive mode end up owner read/write only.
	require.NoError(t.T(), os.WriteFile("probe", nil, 0777))
	info, err = os.Stat("probe")
	require.NoError(t.T(), err)
	assert.Equal(t.T(), os.FileMode(0600), info.Mode().Perm())
	require.NoError(t.T(), os.Remove("probe"))

	err = w.Finalize()

	require.NoError(t.T(), err)
	_, err = os.Lstat(w.Path)
	assert.True(t.T(), os.IsNotExist(err))
	wd, err = os.Getwd()
	require.NoError(t.T(), err)
	assert.Equal(t.T(), t.startDir, wd)
	assert.Equal(t.T(), 0022, currentUmask())
}

func (t *WorkspaceTest) TestSetupIgnoresPermissiveUmask() {
	device.SetUmask(0)

	w, err := Setup(t.parent, false)

	require.NoError(t.T(), err)
	info, err := os.Lstat(w.Path)
	require.NoError(t.T(), err)
	assert.Equal(t.T(), DirPerm, info.Mode().Perm())
	require.NoError(t.T(), w.Finalize())
	assert.Equal(t.T(), 0, currentUmask())
}

func (t *WorkspaceTest) TestSetupRefusesExistingDirectory() {
	require.NoError(t.T(), os.Mkdir(t.expectedPath, 0755))

	w, err := Setup(t.parent, false)

	assert.Nil(t.T(), w)
	assert.Error(t.T(), err)
	// The pre-existing directory is neither reused nor removed.
	info, err := os.Lstat(t.expectedPath)
	require.NoError(t.T(), err)
	assert.Equal(t.T(), os.FileMode(0755), info.Mode().Perm())
	wd, err := os.Getwd()
	require.NoError(t.T(), err)
	assert.Equal(t.T(), t.startDir, wd)
	assert.Equal(t.T(), 0022, currentUmask())
}

func (t *WorkspaceTest) TestSetupRefusesExistingSymlink() {
	target := filepath.Join(t.parent, "elsewhere")
	require.NoError(t.T(), os.Mkdir(target, 0700))
	require.NoError(t.T(), os.Symlink(target, t.expectedPath))

	w, err := Setup(t.parent, false)

	assert.Nil(t.T(), w)
	assert.Error(t.T(), err)
	info, err := os.Lstat(t.expectedPath)
	require.NoError(t.T(), err)
	assert.Equal(t.T(), os.ModeSymlink, info.Mode().Type())
}

func (t *WorkspaceTest) TestSetupRefusesExistingFile() {
	require.NoError(t.T(), os.WriteFile(t.expectedPath, []byte("x"), 0600))

	_, err := Setup(t.parent, false)

	assert.Error(t.T(), err)
}

func (t *WorkspaceTest) TestSetupMissingParent() {
	_, err := Setup(filepath.Join(t.parent, "missing"), false)

	assert.Error(t.T(), err)
	assert.Equal(t.T(), 0022, currentUmask())
}

func (t *WorkspaceTest) TestSetupDefaultsToCurrentDirectory() {
	require.NoError(t.T(), os.Chdir(t.parent))

	w, err := Setup("", false)

	require.NoError(t.T(), err)
	assert.Equal(t.T(), t.expectedPath, w.Path)
	require.NoError(t.T(), w.Finalize())
}

func (t *WorkspaceTest) TestFinalizeKeepsWorkspace() {
	w, err := Setup(t.parent, true)
	require.NoError(t.T(), err)

	err = w.Finalize()

	require.NoError(t.T(), err)
	info, err := os.Lstat(w.Path)
	require.NoError(t.T(), err)
	assert.True(t.T(), info.IsDir())
}

func (t *WorkspaceTest) TestFinalizeNonEmptyWorkspace() {
	w, err := Setup(t.parent, false)
	require.NoError(t.T(), err)
	require.NoError(t.T(), os.WriteFile("tmp1.smallfile", nil, 0600))

	err = w.Finalize()

	assert.Error(t.T(), err)
	_, statErr := os.Lstat(filepath.Join(w.Path, "tmp1.smallfile"))
	assert.NoError(t.T(), statErr)
	// Finalize still left the workspace.
	wd, err := os.Getwd()
	require.NoError(t.T(), err)
	assert.Equal(t.T(), t.startDir, wd)
}

func (t *WorkspaceTest) TestFinalizeTwice() {
	w, err := Setup(t.parent, false)
	require.NoError(t.T(), err)

	require.NoError(t.T(), w.Finalize())
	assert.NoError(t.T(), w.Finalize())
}

func (t *WorkspaceTest) TestLeftovers() {
	w, err := Setup(t.parent, false)
	require.NoError(t.T(), err)
	defer func() {
		os.RemoveAll(w.Path)
		w.Finalize()
	}()
	require.NoError(t.T(), os.WriteFile("tmp3.smallfile", nil, 0600))
	require.NoError(t.T(), os.WriteFile("other", nil, 0600))

	leftovers, err := w.Leftovers("tmp*.smallfile")

	require.NoError(t.T(), err)
	assert.Equal(t.T(), []string{filepath.Join(w.Path, "tmp3.smallfile")}, leftovers)
}
