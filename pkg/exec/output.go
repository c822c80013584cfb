package exec

import (
	"bytes"
	"io"
	"sync"
)

// PrefixWriter adds a prefix to each complete line of output. Partial lines
// are buffered until a newline or Flush.
type PrefixWriter struct {
	mu     sync.Mutex
	prefix string
	writer io.Writer
	buffer []byte
}

// NewPrefixWriter creates a writer that prefixes each line
func NewPrefixWriter(writer io.Writer, prefix string) *PrefixWriter {
	return &PrefixWriter{
		prefix: prefix,
		writer: writer,
	}
}

// Write adds prefix to each line
func (p *PrefixWriter) Write(data []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.buffer = append(p.buffer, data...)
	for {
		i := bytes.IndexByte(p.buffer, '\n')
		if i < 0 {
			break
		}
		if _, err := io.WriteString(p.writer, p.prefix+string(p.buffer[:i+1])); err != nil {
			return 0, err
		}
		p.buffer = p.buffer[i+1:]
	}
	return len(data), nil
}

// Flush writes any remaining buffered content followed by a newline
func (p *PrefixWriter) Flush() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.buffer) == 0 {
		return nil
	}
	_, err := io.WriteString(p.writer, p.prefix+string(p.buffer)+"\n")
	p.buffer = p.buffer[:0]
	return err
}
