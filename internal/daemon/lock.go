package daemon

import (
	"fmt"
	"os"
	"strconv"
)

// writePID replaces the lock file contents with the current pid
func writePID(f *os.File) error {
	if err := f.Truncate(0); err != nil {
		return fmt.Errorf("failed to truncate lock file: %w", err)
	}
	if _, err := f.WriteAt([]byte(strconv.Itoa(os.Getpid())+"\n"), 0); err != nil {
		return fmt.Errorf("failed to write pid to lock file: %w", err)
	}
	return nil
}
