package cronparser

import "errors"

// ErrNeverFires is returned for a schedule without any future activation,
// such as "0 0 30 2 *".
var ErrNeverFires = errors.New("schedule never fires")
