package logger

import (
	"io"
	"sync"
)

// Sink receives fully formatted log lines.
//
// Implementations own their serialization and flush policy. The logger hands
// every record to the sink as a single call, so a sink that serializes
// WriteLine never interleaves bytes from concurrent records.
type Sink interface {
	WriteLine(line []byte) error
}

// syncer is implemented by *os.File.
type syncer interface {
	Sync() error
}

// flusher is implemented by *bufio.Writer and similar buffered writers.
type flusher interface {
	Flush() error
}

// WriterSink writes each line to an io.Writer under a mutex and flushes it
// before returning. There is no buffering across lines.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink wraps w in a line-atomic, flush-per-line sink.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// WriteLine writes line, appending a newline if it is missing, then flushes.
func (s *WriterSink) WriteLine(line []byte) error {
	if len(line) == 0 || line[len(line)-1] != '\n' {
		line = append(line, '\n')
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.w.Write(line); err != nil {
		return err
	}

	switch f := s.w.(type) {
	case flusher:
		return f.Flush()
	case syncer:
		// Sync on a terminal or pipe returns EINVAL; the bytes are already
		// out of the process at that point.
		_ = f.Sync()
	}
	return nil
}

// Writer returns the underlying writer.
func (s *WriterSink) Writer() io.Writer {
	return s.w
}

// sinkWriter adapts a Sink to io.Writer for handlers that format into a
// single Write call per record (slog.JSONHandler does).
type sinkWriter struct {
	sink Sink
}

func (w sinkWriter) Write(p []byte) (int, error) {
	// slog reuses p after Write returns, and WriteLine may append to it.
	line := make([]byte, len(p), len(p)+1)
	copy(line, p)
	if err := w.sink.WriteLine(line); err != nil {
		return 0, err
	}
	return len(p), nil
}
