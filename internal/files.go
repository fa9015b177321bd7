package internal

import (
	"bufio"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/ulikunitz/xz"
)

// FileOpen is os.Open with panics in place of errors
func FileOpen(name string) *os.File {
	f, err := os.Open(name)
	if err != nil {
		log.Panic(err)
	}
	return f
}

// FileCreate is os.Create with panics in place of errors
func FileCreate(name string) *os.File {
	f, err := os.Create(name)
	if err != nil {
		log.Panic(err)
	}
	return f
}

// Close is c.Close() with panics in place of errors
func Close(c io.Closer) {
	if err := c.Close(); err != nil {
		log.Panic(err)
	}
}

type xzReadCloser struct {
	io.Reader
	file *os.File
}

func (r *xzReadCloser) Close() error {
	return r.file.Close()
}

// OpenReader opens name for reading, decompressing transparently
// when the filename carries an .xz suffix.
func OpenReader(name string) io.ReadCloser {
	f := FileOpen(name)
	if filepath.Ext(name) != ".xz" {
		return f
	}
	r, err := xz.NewReader(bufio.NewReader(f))
	if err != nil {
		_ = f.Close()
		log.Panic(err)
	}
	return &xzReadCloser{Reader: r, file: f}
}

type xzWriteCloser struct {
	*xz.Writer
	file *os.File
}

func (w *xzWriteCloser) Close() error {
	if err := w.Writer.Close(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}

// CreateWriter creates name for writing, compressing transparently
// when the filename carries an .xz suffix.
func CreateWriter(name string) io.WriteCloser {
	f := FileCreate(name)
	if filepath.Ext(name) != ".xz" {
		return f
	}
	w, err := xz.NewWriter(f)
	if err != nil {
		_ = f.Close()
		log.Panic(err)
	}
	return &xzWriteCloser{Writer: w, file: f}
}
