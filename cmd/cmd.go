package cmd

import (
	"bufio"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// NewLogger creates a human readable logger writing to stderr. Debug events are only written when verbose is set.
func NewLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// Read opens the file at path and passes it to fn.
func Read(path string, fn func(r io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return errors.Wrapf(fn(bufio.NewReader(f)), "reading %s", path)
}

// Write creates the file at path, passes a buffered writer over it to fn, and flushes it once fn returns.
func Write(path string, fn func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := fn(w); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Transform reads the file in, passing it along with a writer to the file out, to fn.
func Transform(in, out string, fn func(r io.Reader, w io.Writer) error) error {
	return Read(in, func(r io.Reader) error {
		return Write(out, func(w io.Writer) error {
			return fn(r, w)
		})
	})
}
