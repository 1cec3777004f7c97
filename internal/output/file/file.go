package file

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/crimson-sun/actionlog/internal/model"
	"github.com/crimson-sun/actionlog/internal/output"
)

const (
	defaultBufSize  = 64 * 1024
	defaultBackups  = 9
	rotatedFileMode = 0o644
)

// Option configures a file Output.
type Option func(*Output)

// WithMaxSize sets the file size (bytes) at which rotation triggers.
// 0 (default) disables rotation.
func WithMaxSize(bytes int64) Option {
	return func(o *Output) { o.maxSize = bytes }
}

// WithMaxBackups sets how many rotated files ({path}.1 .. {path}.N) are kept.
func WithMaxBackups(n int) Option {
	return func(o *Output) { o.backups = n }
}

// WithBufSize sets the bufio.Writer buffer size. Default: 64KB.
func WithBufSize(bytes int) Option {
	return func(o *Output) { o.bufSize = bytes }
}

// WithPlainLines writes the bare audit line instead of a JSON record.
func WithPlainLines() Option {
	return func(o *Output) { o.plain = true }
}

// Output appends actions to a file with buffered I/O and optional size-based
// rotation. Lines are NDJSON records unless WithPlainLines is set.
type Output struct {
	mu      sync.Mutex
	w       *bufio.Writer
	f       *os.File
	path    string
	plain   bool
	maxSize int64
	backups int
	written int64
	bufSize int
	now     func() time.Time
}

// New creates a file output appending to path.
func New(path string, opts ...Option) (*Output, error) {
	o := &Output{
		path:    path,
		bufSize: defaultBufSize,
		backups: defaultBackups,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.backups < 1 {
		o.backups = 1
	}
	if err := o.openFile(); err != nil {
		return nil, err
	}
	return o, nil
}

// Write encodes the action and appends it as a line to the file.
func (o *Output) Write(_ context.Context, action model.Action) error {
	var data []byte
	if o.plain {
		data = []byte(action.Line())
	} else {
		var err error
		data, err = json.Marshal(output.NewRecord(action, o.now()))
		if err != nil {
			return fmt.Errorf("file output: marshal: %w", err)
		}
	}
	data = append(data, '\n')

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.maxSize > 0 && o.written > 0 && o.written+int64(len(data)) > o.maxSize {
		if err := o.rotate(); err != nil {
			return fmt.Errorf("file output: rotate: %w", err)
		}
	}

	n, err := o.w.Write(data)
	o.written += int64(n)
	if err != nil {
		return fmt.Errorf("file output: write: %w", err)
	}
	return nil
}

// Flush writes buffered lines through to the file.
func (o *Output) Flush() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.w.Flush()
}

// Close flushes the buffer and closes the file.
func (o *Output) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.w.Flush(); err != nil {
		o.f.Close()
		return fmt.Errorf("file output: flush: %w", err)
	}
	return o.f.Close()
}

func (o *Output) openFile() error {
	f, err := os.OpenFile(o.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, rotatedFileMode)
	if err != nil {
		return fmt.Errorf("file output: open %s: %w", o.path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("file output: stat %s: %w", o.path, err)
	}
	o.f = f
	o.w = bufio.NewWriterSize(f, o.bufSize)
	o.written = info.Size()
	return nil
}

// rotate closes the current file, shifts {path}.N-1 to {path}.N down to
// {path}.1, and reopens path empty. The oldest backup is overwritten.
func (o *Output) rotate() error {
	if err := o.w.Flush(); err != nil {
		return err
	}
	if err := o.f.Close(); err != nil {
		return err
	}

	for i := o.backups - 1; i >= 1; i-- {
		// Missing backups are expected until the file has rotated N times.
		_ = os.Rename(fmt.Sprintf("%s.%d", o.path, i), fmt.Sprintf("%s.%d", o.path, i+1))
	}
	if err := os.Rename(o.path, o.path+".1"); err != nil {
		return err
	}
	return o.openFile()
}
