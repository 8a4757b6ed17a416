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

// Package cycle implements one create, write, sync, close and remove cycle
// of a single small file.
package cycle

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/googlecloudplatform/smallfile/cfg"
	"github.com/googlecloudplatform/smallfile/internal/entropy"
	"github.com/googlecloudplatform/smallfile/internal/logger"
	"github.com/jacobsa/timeutil"
)

// State is a step of a cycle. A successful cycle goes through every state
// from Init to Removed; a failed one ends in Aborted.
type State int

const (
	Init State = iota
	Opened
	DataTransferred
	Synced
	Closed
	Removed
	Aborted
)

func (s State) String() string {
	switch s {
	case Init:
		return "Init"
	case Opened:
		return "Opened"
	case DataTransferred:
		return "DataTransferred"
	case Synced:
		return "Synced"
	case Closed:
		return "Closed"
	case Removed:
		return "Removed"
	case Aborted:
		return "Aborted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

var (
	// ErrInvalidFileSpec is returned when there is no open file or no block
	// to move through it.
	ErrInvalidFileSpec = errors.New("invalid file spec")

	// ErrShortWrite is reported when a write accepted less than a block.
	ErrShortWrite = errors.New("short write")
)

// FileGlob matches every name FileName produces.
const FileGlob = "tmp*.smallfile"

// FileName returns the name of the file for the given zero-based index.
func FileName(index int) string {
	return fmt.Sprintf("tmp%d.smallfile", index+1)
}

// Timings holds how long each phase of a cycle took.
type Timings struct {
	Open     time.Duration
	Transfer time.Duration
	Sync     time.Duration
	Close    time.Duration
	Remove   time.Duration
	Total    time.Duration
}

// Result describes one finished cycle.
type Result struct {
	Index int
	Name  string

	// Removed when the cycle succeeded, Aborted otherwise.
	State State

	// For an aborted cycle, the state the failure happened in.
	FailedIn State

	Success bool

	// Why the cycle failed. Nil on success.
	Err error

	// Anomalies that did not fail the cycle.
	Warnings []error

	BytesRead    int
	BytesWritten int
	Timings      Timings
}

func (r *Result) warn(err error) {
	logger.Warnf("warning: %v", err)
	r.Warnings = append(r.Warnings, err)
}

// Runner runs cycles one after the other, reusing a single block buffer.
// It is not safe for concurrent use.
type Runner struct {
	fs          FS
	input       io.Reader
	buf         []byte
	shortWrites cfg.ShortWritePolicy
	clock       timeutil.Clock
}

// NewRunner returns a Runner writing len(buf) bytes from input into each
// file it creates through fs.
func NewRunner(
	fs FS,
	input io.Reader,
	buf []byte,
	shortWrites cfg.ShortWritePolicy,
	clock timeutil.Clock) *Runner {
	return &Runner{
		fs:          fs,
		input:       input,
		buf:         buf,
		shortWrites: shortWrites,
		clock:       clock,
	}
}

// Run performs the cycle for index. Once the file is open, the sync, close
// and remove steps run no matter how the transfer went; their failures are
// warnings. Success means the file was opened and the block written.
func (r *Runner) Run(index int) (res Result) {
	res = Result{
		Index: index,
		Name:  FileName(index),
		State: Init,
	}
	start := r.clock.Now()
	defer func() {
		res.Timings.Total = r.clock.Now().Sub(start)
	}()

	// Init -> Opened
	t := r.clock.Now()
	f, err := r.fs.Create(res.Name)
	res.Timings.Open = r.clock.Now().Sub(t)
	if err != nil {
		res.abort(fmt.Errorf("open %q: %w", res.Name, err))
		return
	}
	if f == nil {
		res.abort(fmt.Errorf("open %q: %w", res.Name, ErrInvalidFileSpec))
		return
	}
	res.State = Opened

	if err := f.DisableCache(); err != nil {
		res.warn(fmt.Errorf("disable caching on %q: %w", res.Name, err))
	}

	if err := f.Chmod(FilePerm); err != nil {
		res.warn(fmt.Errorf("chmod %q: %w", res.Name, err))
	}

	// Opened -> DataTransferred
	t = r.clock.Now()
	transferErr := r.transfer(f, &res)
	res.Timings.Transfer = r.clock.Now().Sub(t)
	if transferErr == nil {
		res.State = DataTransferred
	}

	// DataTransferred -> Synced. The flush is issued even when the transfer
	// failed.
	t = r.clock.Now()
	r.fs.Sync()
	if err := f.FullSync(); err != nil {
		res.warn(fmt.Errorf("flush %q: %w", res.Name, err))
	}
	res.Timings.Sync = r.clock.Now().Sub(t)
	if transferErr == nil {
		res.State = Synced
	}

	// Synced -> Closed
	t = r.clock.Now()
	if err := f.Close(); err != nil {
		res.warn(fmt.Errorf("close %q: %w", res.Name, err))
	}
	res.Timings.Close = r.clock.Now().Sub(t)
	if transferErr == nil {
		res.State = Closed
	}

	// Closed -> Removed
	t = r.clock.Now()
	if err := r.fs.Remove(res.Name); err != nil {
		res.warn(fmt.Errorf("remove %q: %w", res.Name, err))
	}
	res.Timings.Remove = r.clock.Now().Sub(t)

	if transferErr != nil {
		res.abort(transferErr)
		return
	}
	res.State = Removed
	res.Success = true
	return
}

func (r *Result) abort(err error) {
	logger.Errorf("error: %v", err)
	r.Err = err
	r.FailedIn = r.State
	r.State = Aborted
}

// transfer reads one block from the input and appends it to f.
func (r *Runner) transfer(f OutputFile, res *Result) error {
	if f == nil || len(r.buf) == 0 {
		return fmt.Errorf("transfer to %q: %w", res.Name, ErrInvalidFileSpec)
	}

	n, err := entropy.ReadBlock(r.input, r.buf)
	res.BytesRead = n
	if err != nil {
		res.warn(err)
	}

	n, err = f.Write(r.buf)
	res.BytesWritten = n
	if err != nil {
		return fmt.Errorf("write %q: %w", res.Name, err)
	}

	if n < len(r.buf) {
		short := fmt.Errorf("%w: wrote %d of %d bytes to %q", ErrShortWrite, n, len(r.buf), res.Name)
		if r.shortWrites == cfg.ShortWriteFail {
			return short
		}
		res.warn(short)
	}

	return nil
}
