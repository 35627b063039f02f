package keygen

import (
	"github.com/quorumsig/gg20/pkg/hash"
	"github.com/quorumsig/gg20/pkg/round"
)

// Round1 waits for every party's first broadcast.
type Round1 struct {
	*Round0
	keys         *keys
	decommitment hash.Decommitment
	own          *Broadcast1
}

// ExpectsMessages returns the store collecting the round 1 broadcasts of
// the other parties.
func (r *Round1) ExpectsMessages() *round.BroadcastMsgs[*Broadcast1] {
	return round.NewBroadcastMsgs[*Broadcast1](r.selfID, r.n)
}

// Proceed holds on to the received key material and reveals yᵢ by
// broadcasting the decommitment. Nothing can be verified yet; the
// commitments are only checked once all decommitments have arrived.
func (r *Round1) Proceed(input *round.BroadcastMsgs[*Broadcast1], out chan<- *round.Message) (*Round2, error) {
	commitments := input.IncludingSelf(r.own)
	if err := round.Broadcast(out, r.selfID, &Broadcast2{Y: r.keys.y, Decommitment: r.decommitment}); err != nil {
		return nil, err
	}
	return &Round2{Round1: r, commitments: commitments}, nil
}

// Number returns 1.
func (*Round1) Number() round.Number { return 1 }

// IsExpensive is false: nothing is computed.
func (*Round1) IsExpensive() bool { return false }
