package formatter

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// WriteFile creates path (and its directory) and streams write into it
// through a buffer.
func WriteFile(path string, write func(io.Writer) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "create directory for %s", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()
	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return errors.Wrapf(bw.Flush(), "flush %s", path)
}
