// Package makeflags renders and parses the jobserver MAKEFLAGS value.
//
// Every value produced here begins with " -j<count> ", an initial space,
// the "-j" characters, the job slot count, then another space. The initial
// space mimics what GNU Make 4.3 emits; other pool implementations do not
// use one and clients must not expect it. The count is likewise a debugging
// aid rather than something clients should depend on.
package makeflags

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// EnvVar is the environment variable carrying the jobserver advertisement.
const EnvVar = "MAKEFLAGS"

const authFlag = "--jobserver-auth="

// legacyFDsFlag is read by GNU Make older than 4.2; only pipe mode emits it.
const legacyFDsFlag = "--jobserver-fds="

var (
	ErrNoAuth  = errors.New("makeflags: no jobserver advertised")
	ErrBadAuth = errors.New("makeflags: malformed jobserver auth")
)

// Kind identifies the reservoir backend an auth value points at.
type Kind int

const (
	KindFIFO Kind = iota
	KindPipe
	KindSemaphore
)

// Auth is one parsed jobserver advertisement.
type Auth struct {
	Jobs          int
	Kind          Kind
	FifoPath      string
	ReadFD        int
	WriteFD       int
	SemaphoreName string
}

// Pool renders the MAKEFLAGS value for a fifo or semaphore reservoir.
// auth is the encoded address: "fifo:<abspath>" or a bare semaphore name.
func Pool(jobs int, auth string) string {
	return fmt.Sprintf(" -j%d %s%s", jobs, authFlag, auth)
}

// PipePool renders the MAKEFLAGS value for a pipe reservoir, including the
// legacy descriptor flag alongside the auth form.
func PipePool(jobs, readFD, writeFD int) string {
	return fmt.Sprintf(" -j%d %s%d,%d %s%d,%d",
		jobs, legacyFDsFlag, readFD, writeFD, authFlag, readFD, writeFD)
}

// Replace returns env with the MAKEFLAGS entry set to value, overwriting any
// inherited entry wholesale. Exactly one jobserver may be advertised per
// invocation; parent values are never merged.
func Replace(env []string, value string) []string {
	out := make([]string, 0, len(env)+1)
	for _, kv := range env {
		if strings.HasPrefix(kv, EnvVar+"=") {
			continue
		}
		out = append(out, kv)
	}
	return append(out, EnvVar+"="+value)
}

// Parse extracts the jobserver advertisement from a MAKEFLAGS value.
// It accepts values produced by this package as well as the formats other
// pool providers emit (no leading space, no -j count).
func Parse(value string) (Auth, error) {
	auth := Auth{ReadFD: -1, WriteFD: -1}
	encoded := ""
	for _, field := range strings.Fields(value) {
		switch {
		case strings.HasPrefix(field, authFlag):
			encoded = strings.TrimPrefix(field, authFlag)
		case strings.HasPrefix(field, "-j"):
			if n, err := strconv.Atoi(field[len("-j"):]); err == nil {
				auth.Jobs = n
			}
		}
	}
	if encoded == "" {
		return Auth{}, ErrNoAuth
	}

	if path, ok := strings.CutPrefix(encoded, "fifo:"); ok {
		if path == "" {
			return Auth{}, fmt.Errorf("%w: empty fifo path", ErrBadAuth)
		}
		auth.Kind = KindFIFO
		auth.FifoPath = path
		return auth, nil
	}

	if rraw, wraw, ok := strings.Cut(encoded, ","); ok {
		r, errR := strconv.Atoi(rraw)
		w, errW := strconv.Atoi(wraw)
		if errR != nil || errW != nil || r < 0 || w < 0 {
			return Auth{}, fmt.Errorf("%w: bad descriptor pair %q", ErrBadAuth, encoded)
		}
		auth.Kind = KindPipe
		auth.ReadFD = r
		auth.WriteFD = w
		return auth, nil
	}

	auth.Kind = KindSemaphore
	auth.SemaphoreName = encoded
	return auth, nil
}
