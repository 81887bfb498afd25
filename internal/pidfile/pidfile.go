package pidfile

import (
	"fmt"
	"os"
	"strconv"
)

// Lock is a held single-instance lock backed by a PID file.
type Lock struct {
	path string
}

// Acquire creates the PID file exclusively. It fails when the file already
// exists, which means another worker is (or crashed while) running against
// the same ledger.
func Acquire(path string) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("pid file %s exists, another instance may be running", path)
		}
		return nil, fmt.Errorf("create pid file: %w", err)
	}

	_, writeErr := f.WriteString(strconv.Itoa(os.Getpid()))
	closeErr := f.Close()
	if writeErr != nil || closeErr != nil {
		_ = os.Remove(path)
		if writeErr != nil {
			return nil, fmt.Errorf("write pid file: %w", writeErr)
		}
		return nil, fmt.Errorf("close pid file: %w", closeErr)
	}

	return &Lock{path: path}, nil
}

// Release removes the PID file.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove pid file: %w", err)
	}
	return nil
}
