package histfactory

import "os"

// Silenced runs fn with os.Stdout and os.Stderr pointed at the OS null
// device, restoring them afterwards even if fn fails. Model-construction
// engines tend to narrate every step to the console; this gives callers a
// scoped way to mute them.
//
// Only output written through os.Stdout/os.Stderr (fmt.Print and friends) is
// redirected; writers that captured the originals earlier are unaffected.
func Silenced(fn func() error) error {
	devnull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	defer devnull.Close()

	stdout, stderr := os.Stdout, os.Stderr
	os.Stdout, os.Stderr = devnull, devnull
	defer func() {
		os.Stdout, os.Stderr = stdout, stderr
	}()

	return fn()
}
