package ioutil

import "io"

// CountingWriter counts bytes on their way to the underlying writer.
type CountingWriter struct {
	writer io.Writer
	count  int64
}

func NewCountingWriter(dest io.Writer) *CountingWriter {
	return &CountingWriter{writer: dest}
}

func (w *CountingWriter) Write(p []byte) (int, error) {
	n, err := w.writer.Write(p)
	w.count += int64(n)
	return n, err
}

func (w *CountingWriter) Count() int64 {
	return w.count
}
