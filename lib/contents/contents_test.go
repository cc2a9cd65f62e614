// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package contents

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"golang.org/x/sys/unix"

	"github.com/bureau-foundation/netcore/lib/secret"
	"github.com/bureau-foundation/netcore/lib/testutil"
)

// heapAllocator serves secret memory from the Go heap and snapshots
// every region when it is freed.
type heapAllocator struct {
	mu        sync.Mutex
	allocated int
	freed     [][]byte
}

func (a *heapAllocator) Allocate(size int) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.allocated++
	return make([]byte, size), nil
}

func (a *heapAllocator) Free(data []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.freed = append(a.freed, bytes.Clone(data))
	return nil
}

func (a *heapAllocator) requireBalancedAndZero(t *testing.T) {
	t.Helper()
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.freed) != a.allocated {
		t.Fatalf("allocated %d regions but freed %d", a.allocated, len(a.freed))
	}
	for index, region := range a.freed {
		if !secret.IsZero(region) {
			t.Fatalf("freed region %d was not wiped: %q", index, region)
		}
	}
}

// pipeWith returns the read end of a pipe whose writer delivers data
// and then closes. The writer's result arrives on the returned channel.
func pipeWith(t *testing.T, data []byte) (*os.File, <-chan error) {
	t.Helper()
	reader, writer, err := os.Pipe()
	if err != nil {
		t.Fatalf("creating pipe: %v", err)
	}
	t.Cleanup(func() { reader.Close() })

	done := make(chan error, 1)
	go func() {
		_, err := writer.Write(data)
		writer.Close()
		done <- err
	}()
	return reader, done
}

func requireContents(t *testing.T, result *Contents, want []byte) {
	t.Helper()
	if result.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", result.Len(), len(want))
	}
	if !bytes.Equal(result.Bytes(), want) {
		t.Fatalf("Bytes() = %q, want %q", result.Bytes(), want)
	}
	terminated := result.Terminated()
	if len(terminated) != len(want)+1 || terminated[len(want)] != 0 || !bytes.Equal(terminated[:len(want)], want) {
		t.Fatalf("Terminated() = %q, want %q plus NUL", terminated, want)
	}
}

func TestReadFile_Regular(t *testing.T) {
	path := testutil.TempFile(t, "regular", []byte("ssid=home\npsk=secret\n"))

	result, err := ReadFile(-1, path, Options{})
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	defer result.Release()
	requireContents(t, result, []byte("ssid=home\npsk=secret\n"))
	if result.Secret() {
		t.Error("plain read reported secret storage")
	}
}

func TestReadFile_MaxLengthBoundary(t *testing.T) {
	const maxLength = 16
	fits := bytes.Repeat([]byte("a"), maxLength-1)
	result, err := ReadFile(-1, testutil.TempFile(t, "fits", fits), Options{MaxLength: maxLength})
	if err != nil {
		t.Fatalf("reading %d bytes with max %d failed: %v", len(fits), maxLength, err)
	}
	requireContents(t, result, fits)
	result.Release()

	tooBig := bytes.Repeat([]byte("a"), maxLength)
	_, err = ReadFile(-1, testutil.TempFile(t, "big", tooBig), Options{MaxLength: maxLength})
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if !errors.Is(err, unix.EMSGSIZE) {
		t.Errorf("expected EMSGSIZE in the chain, got %v", err)
	}
}

func TestReadFile_Empty(t *testing.T) {
	// A zero stat size takes the stream path, as procfs files do.
	result, err := ReadFile(-1, testutil.TempFile(t, "empty", nil), Options{})
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	requireContents(t, result, nil)
}

func TestReadFile_RelativeToDirectory(t *testing.T) {
	path := testutil.TempFile(t, "relative", []byte("relative content"))
	dirfd, err := unix.Open(filepath.Dir(path), unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
	if err != nil {
		t.Fatalf("opening directory: %v", err)
	}
	defer unix.Close(dirfd)

	result, err := ReadFile(dirfd, filepath.Base(path), Options{})
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	requireContents(t, result, []byte("relative content"))
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(-1, filepath.Join(t.TempDir(), "absent"), Options{})
	if !errors.Is(err, ErrOpen) || !errors.Is(err, unix.ENOENT) {
		t.Fatalf("expected ErrOpen wrapping ENOENT, got %v", err)
	}

	_, err = ReadFile(-1, "", Options{})
	if !errors.Is(err, ErrOpen) {
		t.Fatalf("expected ErrOpen for an empty path, got %v", err)
	}
}

func TestReadFile_Fifo(t *testing.T) {
	path := testutil.Fifo(t)
	payload := bytes.Repeat([]byte("fifo-data "), 1000)

	done := make(chan error, 1)
	go func() {
		writer, err := os.OpenFile(path, os.O_WRONLY, 0)
		if err != nil {
			done <- err
			return
		}
		_, err = writer.Write(payload)
		writer.Close()
		done <- err
	}()

	result, err := ReadFile(-1, path, Options{})
	if err != nil {
		t.Fatalf("ReadFile on fifo failed: %v", err)
	}
	if err := testutil.RequireReceive(t, done, 5*time.Second, "waiting for fifo writer"); err != nil {
		t.Fatalf("fifo writer failed: %v", err)
	}
	requireContents(t, result, payload)
}

func TestReadFD_Stream(t *testing.T) {
	payload := bytes.Repeat([]byte{0x5a, 0x00, 0xff}, 5000)
	reader, done := pipeWith(t, payload)

	result, err := ReadFD(int(reader.Fd()), Options{})
	if err != nil {
		t.Fatalf("ReadFD failed: %v", err)
	}
	if err := testutil.RequireReceive(t, done, 5*time.Second, "waiting for pipe writer"); err != nil {
		t.Fatalf("pipe writer failed: %v", err)
	}
	requireContents(t, result, payload)
}

func TestReadFD_StreamMaxLengthBoundary(t *testing.T) {
	const maxLength = 6000

	fits := bytes.Repeat([]byte("s"), maxLength-1)
	reader, done := pipeWith(t, fits)
	result, err := ReadFD(int(reader.Fd()), Options{MaxLength: maxLength})
	if err != nil {
		t.Fatalf("reading %d streamed bytes with max %d failed: %v", len(fits), maxLength, err)
	}
	testutil.RequireReceive(t, done, 5*time.Second, "waiting for pipe writer")
	requireContents(t, result, fits)

	reader, done = pipeWith(t, bytes.Repeat([]byte("s"), maxLength))
	_, err = ReadFD(int(reader.Fd()), Options{MaxLength: maxLength})
	if !errors.Is(err, ErrTooLarge) || !errors.Is(err, unix.EMSGSIZE) {
		t.Fatalf("expected ErrTooLarge wrapping EMSGSIZE, got %v", err)
	}
	testutil.RequireReceive(t, done, 5*time.Second, "waiting for pipe writer")
}

func TestReadFD_EmptyStream(t *testing.T) {
	reader, done := pipeWith(t, nil)
	result, err := ReadFD(int(reader.Fd()), Options{})
	if err != nil {
		t.Fatalf("ReadFD failed: %v", err)
	}
	testutil.RequireReceive(t, done, 5*time.Second, "waiting for pipe writer")
	requireContents(t, result, nil)
}

func TestReadFD_BadDescriptor(t *testing.T) {
	_, err := ReadFD(1<<20, Options{})
	if !errors.Is(err, ErrStat) || !errors.Is(err, unix.EBADF) {
		t.Fatalf("expected ErrStat wrapping EBADF, got %v", err)
	}
}

func TestReadFD_NegativeMaxLengthPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a negative max length")
		}
	}()
	ReadFD(0, Options{MaxLength: -1})
}

func TestReadFile_SecretRegular(t *testing.T) {
	allocator := &heapAllocator{}
	path := testutil.TempFile(t, "psk", []byte("correct horse battery staple"))

	result, err := ReadFile(-1, path, Options{Secret: true, Allocator: allocator})
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !result.Secret() {
		t.Error("secret read did not use secret storage")
	}
	requireContents(t, result, []byte("correct horse battery staple"))

	if err := result.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	allocator.requireBalancedAndZero(t)
	if allocator.allocated != 1 {
		t.Errorf("regular secret read used %d allocations, want 1", allocator.allocated)
	}
	if len(allocator.freed[0]) != len("correct horse battery staple")+1 {
		t.Errorf("expected a size+1 region, got %d bytes", len(allocator.freed[0]))
	}
}

func TestReadFD_SecretStream(t *testing.T) {
	allocator := &heapAllocator{}
	payload := bytes.Repeat([]byte("k3y"), 3000)
	reader, done := pipeWith(t, payload)

	result, err := ReadFD(int(reader.Fd()), Options{Secret: true, Allocator: allocator})
	if err != nil {
		t.Fatalf("ReadFD failed: %v", err)
	}
	testutil.RequireReceive(t, done, 5*time.Second, "waiting for pipe writer")
	requireContents(t, result, payload)

	result.Release()
	allocator.requireBalancedAndZero(t)
}

func TestReadFD_SecretEmptyStream(t *testing.T) {
	allocator := &heapAllocator{}
	reader, done := pipeWith(t, nil)

	result, err := ReadFD(int(reader.Fd()), Options{Secret: true, Allocator: allocator})
	if err != nil {
		t.Fatalf("ReadFD failed: %v", err)
	}
	testutil.RequireReceive(t, done, 5*time.Second, "waiting for pipe writer")
	requireContents(t, result, nil)
	result.Release()
	allocator.requireBalancedAndZero(t)
}

func TestContents_UseAfterReleasePanics(t *testing.T) {
	result, err := ReadFile(-1, testutil.TempFile(t, "released", []byte("x")), Options{})
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	result.Release()
	if err := result.Release(); err != nil {
		t.Fatalf("second Release returned %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic from Bytes after Release")
		}
	}()
	result.Bytes()
}

func TestGrowStorage_ClampsToMaxLength(t *testing.T) {
	storage := []byte("abcd")
	grown := growStorage(storage, 4, 9000, 9001, true)
	if len(grown) < 9000 || len(grown) > 9001 {
		t.Fatalf("grown to %d bytes, want within [9000, 9001]", len(grown))
	}
	if string(grown[:4]) != "abcd" {
		t.Errorf("prefix lost: %q", grown[:4])
	}
	if !secret.IsZero(storage) {
		t.Errorf("superseded storage not wiped: %q", storage)
	}
}
