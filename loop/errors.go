package loop

import "errors"

var ErrRunning = errors.New("loop: already running")
