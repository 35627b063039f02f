// Package keygen implements the distributed key generation phase of the
// Gennaro-Goldfeder threshold ECDSA protocol (GG20).
//
// An execution runs between n parties labelled 1 through n and produces a
// (t, n) Feldman sharing of a fresh ECDSA key: any t+1 parties can later
// sign, while t or fewer learn nothing about the secret. Alongside the
// curve material, every party obtains a Paillier key pair and ring-Pedersen
// parameters for each participant, which the signing phases consume.
//
// The protocol is expressed as a chain of value types Round0 through
// Round4. Each Proceed consumes the current state together with the full
// set of peer messages for the round and yields the successor, so a state
// can never be advanced twice. The final transition returns the LocalKey.
package keygen

import (
	"errors"
	"fmt"

	"github.com/quorumsig/gg20/pkg/math/curve"
	"github.com/quorumsig/gg20/pkg/party"
	"github.com/quorumsig/gg20/pkg/pool"
)

// NewRound0 returns the initial state for party selfID in a session with
// count parties and threshold t, the degree of the sharing polynomial.
// A nil pool is allowed, in which case all proof work runs on the calling
// goroutine.
func NewRound0(group curve.Curve, selfID party.ID, threshold, count int, pl *pool.Pool) (*Round0, error) {
	if group == nil {
		return nil, errors.New("keygen: group is nil")
	}
	if count < 2 {
		return nil, fmt.Errorf("keygen: invalid party count %d", count)
	}
	if threshold < 1 || threshold > count-1 {
		return nil, fmt.Errorf("keygen: invalid threshold %d for %d parties", threshold, count)
	}
	if selfID == party.Broadcast || int(selfID) > count {
		return nil, fmt.Errorf("keygen: party %d outside of session", selfID)
	}
	return &Round0{
		group:     group,
		selfID:    selfID,
		threshold: threshold,
		n:         count,
		pool:      pl,
	}, nil
}
