package pool

import "fmt"

// ConservationError reports a token conservation violation found by Audit.
type ConservationError struct {
	Expected int
	Measured int
}

// Missing is the number of tokens a client acquired and never released.
func (e *ConservationError) Missing() int {
	if e.Measured < e.Expected {
		return e.Expected - e.Measured
	}
	return 0
}

// Extra is the number of tokens released without a matching acquire.
func (e *ConservationError) Extra() int {
	if e.Measured > e.Expected {
		return e.Measured - e.Expected
	}
	return 0
}

func (e *ConservationError) Error() string {
	if n := e.Missing(); n > 0 {
		return fmt.Sprintf("%d tokens were missing from the jobs pool (got %d, expected %d)",
			n, e.Measured, e.Expected)
	}
	return fmt.Sprintf("%d extra tokens were released to the jobs pool (got %d, expected %d)",
		e.Extra(), e.Measured, e.Expected)
}

// Audit measures the reservoir after the supervised tree exited and checks
// the conservation invariant: the pool must again hold exactly jobs-1 tokens.
// A degenerate pool (jobs <= 1) has no tokens to conserve and always passes.
func Audit(b Backend, jobs int) error {
	if jobs <= 1 {
		return nil
	}
	expected := jobs - 1
	measured, err := b.Drain()
	if err != nil {
		return fmt.Errorf("audit jobs pool: %w", err)
	}
	if measured != expected {
		return &ConservationError{Expected: expected, Measured: measured}
	}
	return nil
}
