package storage

import (
	"errors"
	"os"
	"path/filepath"

	"hotel-deals/utils"
)

// withFile creates (or truncates) path, hands it to write and always
// closes it. A close failure is reported when write itself succeeded.
func withFile(path string, write func(f *os.File) error) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
			return utils.IOError("create output dir for %q: %w", path, mkErr)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return utils.IOError("create file %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = utils.IOError("close %q: %w", path, cerr)
		}
	}()

	if werr := write(f); werr != nil {
		var se *utils.StageError
		if errors.As(werr, &se) {
			return werr
		}
		return utils.IOError("write %q: %w", path, werr)
	}
	return nil
}
