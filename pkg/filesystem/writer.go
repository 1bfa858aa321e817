package filesystem

import (
	stderrors "errors"
	"io/fs"
	"math/rand/v2"
	"path/filepath"
	"strconv"

	"github.com/arthur-debert/quicken/pkg/errors"
)

// WriteOutcome is the result of a guarded write
type WriteOutcome int

const (
	// Written means the content is now on disk
	Written WriteOutcome = iota
	// AlreadyExists means the target was present and left untouched
	AlreadyExists
)

func (o WriteOutcome) String() string {
	switch o {
	case Written:
		return "written"
	case AlreadyExists:
		return "already_exists"
	default:
		return "unknown"
	}
}

const (
	defaultFilePerm = 0644
	defaultDirPerm  = 0755
)

// Writer creates files without clobbering existing ones unless asked to
type Writer struct {
	fs FS
}

// NewWriter returns a Writer on top of fsys
func NewWriter(fsys FS) *Writer {
	return &Writer{fs: fsys}
}

// Exists reports whether path is present. Stat failures other than
// non-existence are returned as file_write errors.
func (w *Writer) Exists(path string) (bool, error) {
	_, err := w.fs.Stat(path)
	if err == nil {
		return true, nil
	}
	if stderrors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, errors.Wrapf(err, errors.ErrFileWrite, "checking %s", path).WithDetail("path", path)
}

// Write stores content at path. An existing file is left alone and reported
// as AlreadyExists unless force is set. Content goes to a sibling temp file
// first and is renamed into place.
func (w *Writer) Write(path, content string, force bool) (WriteOutcome, error) {
	exists, err := w.Exists(path)
	if err != nil {
		return Written, err
	}
	if exists && !force {
		return AlreadyExists, nil
	}

	dir := filepath.Dir(path)
	if err := w.fs.MkdirAll(dir, defaultDirPerm); err != nil {
		return Written, errors.Wrapf(err, errors.ErrFileWrite, "creating directory %s", dir).WithDetail("path", path)
	}

	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+strconv.FormatUint(rand.Uint64(), 36)+".tmp")
	if err := w.fs.WriteFile(tmp, []byte(content), defaultFilePerm); err != nil {
		_ = w.fs.Remove(tmp)
		return Written, errors.Wrapf(err, errors.ErrFileWrite, "writing %s", path).WithDetail("path", path)
	}
	if err := w.fs.Rename(tmp, path); err != nil {
		_ = w.fs.Remove(tmp)
		return Written, errors.Wrapf(err, errors.ErrFileWrite, "writing %s", path).WithDetail("path", path)
	}

	return Written, nil
}
