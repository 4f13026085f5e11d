package core

/*------------------------------------------------------------------
 *
 * Purpose:	Error kinds for frame decode and protocol-level failure.
 *
 * Description:	Decode errors are never fatal: a receiver bumps a
 *		counter and drops the frame.  Protocol-progress failures
 *		(retry/timeout budget exhausted) terminate a run with
 *		ok=false.  Argument errors are the only fatal kind.
 *
 *------------------------------------------------------------------*/

import "errors"

// Decode error kinds, returned by Decode. Use errors.Is against these
// sentinels; callers that only care "was this a decode failure" can
// check errors.Is(err, ErrDecode) since every kind wraps it.
var (
	ErrDecode      = errors.New("frame: decode error")
	ErrTooShort    = wrapDecode(errors.New("frame: too short"))
	ErrBadMagic    = wrapDecode(errors.New("frame: bad magic"))
	ErrBadVersion  = wrapDecode(errors.New("frame: bad version"))
	ErrBadLength   = wrapDecode(errors.New("frame: bad length"))
	ErrBadCRC      = wrapDecode(errors.New("frame: bad crc"))
	ErrFieldRange  = errors.New("frame: field out of range")
	ErrInvalidArg  = errors.New("frame: invalid argument")
)

type decodeError struct {
	err error
}

func (e *decodeError) Error() string { return e.err.Error() }
func (e *decodeError) Unwrap() error { return ErrDecode }

func wrapDecode(err error) error {
	return &decodeError{err: err}
}

// ErrTooManyRetries is returned by a Stop-and-Wait run when a frame's
// per-seq retry budget is exhausted before an ACK arrives.
var ErrTooManyRetries = errors.New("sender: too many retries")

// ErrTooManyTimeouts is returned by a Go-Back-N run when the per-base
// timeout budget is exhausted without window progress.
var ErrTooManyTimeouts = errors.New("sender: too many timeouts")
