package keygen

import (
	"errors"
	"fmt"

	"github.com/quorumsig/gg20/pkg/party"
)

// Sentinels classifying the three verification failures of the protocol.
// Each is named after the round performing the check.
var (
	// ErrRound2 indicates a wrong decommitment, an invalid Paillier or
	// Pedersen parameter, or a failed proof in a round 1 broadcast.
	ErrRound2 = errors.New("round 2: verify commitments")
	// ErrRound3 indicates a decrypted share inconsistent with the sender's
	// exponent polynomial.
	ErrRound3 = errors.New("round 3: verify vss construction")
	// ErrRound4 indicates an invalid Schnorr proof, or a public share that
	// does not match the joint exponent polynomial.
	ErrRound4 = errors.New("round 4: verify dlog proof")
)

// Error is a fatal protocol failure attributable to one or more parties.
// There is no recovery; the session must be restarted without the culprits.
type Error struct {
	// Err is one of the sentinels above.
	Err error
	// Culprits lists the misbehaving parties in ascending order.
	Culprits party.IDSlice
}

func (e *Error) Error() string {
	return fmt.Sprintf("keygen: %s, culprits: %v", e.Err, e.Culprits)
}

// Unwrap returns the sentinel, so errors.Is can classify a failure.
func (e *Error) Unwrap() error { return e.Err }
