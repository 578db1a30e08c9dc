package fasta

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// PathFunc supplies a source path for a Reader constructed without one.
// Prompting the user is the caller's business; the Reader invokes the
// function once, when iteration starts.
type PathFunc func() (string, error)

// Reader streams records from a FASTA source one at a time without holding
// the whole input in memory. Construction never touches the source; the file
// and prompt variants resolve and open it on the first call to Next.
//
// A Reader is single use and single consumer. Once Next has returned a
// terminal error, every later call returns that same error. Records already
// returned stay valid regardless of what the stream does afterwards.
type Reader struct {
	open    func() (io.Reader, io.Closer, error)
	scanner *bufio.Scanner
	closer  io.Closer
	line    int
	inRec   bool
	current Record
	err     error
}

// NewReader returns a Reader over an already open stream. The Reader does
// not close the stream; its owner does.
func NewReader(r io.Reader) *Reader {
	return &Reader{open: func() (io.Reader, io.Closer, error) { return r, nil, nil }}
}

// NewFileReader returns a Reader bound to path. The file is opened when
// iteration starts; a missing file surfaces from the first Next call and
// satisfies errors.Is(err, fs.ErrNotExist).
func NewFileReader(path string) *Reader {
	return NewPromptReader(func() (string, error) { return path, nil })
}

// NewPromptReader returns a Reader that obtains its source path from supply
// when iteration starts.
func NewPromptReader(supply PathFunc) *Reader {
	return &Reader{open: func() (io.Reader, io.Closer, error) {
		path, err := supply()
		if err != nil {
			return nil, nil, errors.Wrap(err, "resolve fasta source path")
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "open fasta source %q", path)
		}
		return f, f, nil
	}}
}

// Next returns the next record in file order. It returns io.EOF after the
// final record, a MalformedError for sequence data with no preceding header,
// and closes the underlying source on every terminal path.
func (r *Reader) Next() (Record, error) {
	if r.err != nil {
		return Record{}, r.err
	}
	if r.scanner == nil {
		src, closer, err := r.open()
		if err != nil {
			r.err = err
			return Record{}, err
		}
		r.scanner = bufio.NewScanner(src)
		r.closer = closer
	}
	for r.scanner.Scan() {
		r.line++
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			opened := Record{Header: line[1:]}
			if r.inRec {
				done := r.current
				r.current = opened
				return done, nil
			}
			r.inRec = true
			r.current = opened
			continue
		}
		if !r.inRec {
			r.fail(&MalformedError{Line: r.line, Text: line})
			return Record{}, r.err
		}
		r.current.Sequence += line
	}
	if err := r.scanner.Err(); err != nil {
		r.fail(errors.Wrap(err, "read fasta source"))
		return Record{}, r.err
	}
	r.fail(io.EOF)
	if r.inRec {
		r.inRec = false
		done := r.current
		r.current = Record{}
		return done, nil
	}
	return Record{}, io.EOF
}

// Close releases the underlying source and ends the iteration. It is safe to
// call at any time and more than once; callers that stop consuming before
// io.EOF must call it.
func (r *Reader) Close() error {
	if r.err == nil {
		r.err = io.EOF
	}
	return r.release()
}

func (r *Reader) fail(err error) {
	r.err = err
	_ = r.release()
}

func (r *Reader) release() error {
	if r.closer == nil {
		return nil
	}
	c := r.closer
	r.closer = nil
	return c.Close()
}
