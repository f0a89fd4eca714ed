package log

import "io"

// multiWriter fans each formatted log line out to every configured
// appender. Unlike io.MultiWriter it keeps writing to the remaining
// appenders after one fails, reporting the first failure.
type multiWriter struct {
	writers []io.Writer
}

func newMultiWriter() *multiWriter {
	return &multiWriter{}
}

func (m *multiWriter) Add(w io.Writer) *multiWriter {
	m.writers = append(m.writers, w)
	return m
}

func (m *multiWriter) Write(p []byte) (int, error) {
	var firstErr error
	for _, w := range m.writers {
		if _, err := w.Write(p); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return 0, firstErr
	}
	return len(p), nil
}
