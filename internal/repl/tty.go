package repl

import "os"

// attachControllingTTY rebinds stdio to /dev/tty when available. This
// prevents immediate EOF in wrapped environments where stdin is not
// connected to the interactive terminal. The open tty is returned so the
// readline instance can be pointed at it directly: readline snapshots
// os.Stdin at package init, so swapping the os globals alone never reaches
// it. Set JARVIS_NO_TTY_ATTACH=1 to disable.
func attachControllingTTY() (tty *os.File, restore func()) {
	if os.Getenv("JARVIS_NO_TTY_ATTACH") == "1" {
		return nil, nil
	}

	f, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, nil
	}

	oldIn, oldOut, oldErr := os.Stdin, os.Stdout, os.Stderr
	os.Stdin = f
	os.Stdout = f
	os.Stderr = f

	return f, func() {
		os.Stdin = oldIn
		os.Stdout = oldOut
		os.Stderr = oldErr
		_ = f.Close()
	}
}
