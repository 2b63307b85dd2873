package trace

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// FileObserver appends an indented, human-readable trace to a text file:
//
//	rap[bench]  Seq: power-up
//	rap[bench]      Step: reset
//	rap[bench]          Op: write 0x10 <- 0x01
//	rap[bench]            Error: ReadSingle rejected: READ_ONLY
type FileObserver struct {
	mu     sync.Mutex
	file   *os.File
	w      *bufio.Writer
	closed bool
}

// NewFileObserver opens path for appending, creating it if needed.
func NewFileObserver(path string) (*FileObserver, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &FileObserver{file: f, w: bufio.NewWriter(f)}, nil
}

// FilenameFor expands a template containing "{time}" with t formatted as
// 2006.01.02_15.04.05.
func FilenameFor(template string, t time.Time) string {
	return strings.ReplaceAll(template, "{time}", t.Format("2006.01.02_15.04.05"))
}

func (o *FileObserver) printf(src Source, indent int, format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	fmt.Fprintf(o.w, "%s%s", src, strings.Repeat(" ", indent))
	fmt.Fprintf(o.w, format, args...)
	o.w.WriteByte('\n')
}

func (o *FileObserver) SeqStart(src Source, msg string)    { o.printf(src, 2, "Seq: %s", msg) }
func (o *FileObserver) Step(src Source, msg string)        { o.printf(src, 6, "Step: %s", msg) }
func (o *FileObserver) OpStart(src Source, op string)      { o.printf(src, 10, "Op: %s", op) }
func (o *FileObserver) OpValues(src Source, values string) { o.printf(src, 12, "%s", values) }
func (o *FileObserver) OpEnd(Source)                       {}
func (o *FileObserver) OpError(src Source, msg string)     { o.printf(src, 12, "Error: %s", msg) }

// Flush writes buffered lines to the file.
func (o *FileObserver) Flush() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return nil
	}
	return o.w.Flush()
}

// Close flushes and closes the file. It is safe to call more than once.
func (o *FileObserver) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return nil
	}
	o.closed = true
	if err := o.w.Flush(); err != nil {
		o.file.Close()
		return err
	}
	return o.file.Close()
}

var _ Observer = (*FileObserver)(nil)
