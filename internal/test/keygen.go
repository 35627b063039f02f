package test

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/sync/errgroup"

	"github.com/quorumsig/gg20/pkg/math/curve"
	"github.com/quorumsig/gg20/pkg/party"
	"github.com/quorumsig/gg20/pkg/pool"
	"github.com/quorumsig/gg20/pkg/round"
	"github.com/quorumsig/gg20/protocols/keygen"
)

// Rule inspects or tampers with a message in flight. The content passed to
// the rule is the receiving party's freshly decoded copy, so a mutation
// affects only that receiver. Rules must modify the content in place.
type Rule func(msg *round.Message)

// Keygen runs a full key generation between n parties over an in-memory
// network. Every message is serialized and decoded again on delivery so
// the wire format is exercised. Each party computes on its own worker
// pool. A non-nil rule is applied to every delivered message.
func Keygen(group curve.Curve, n, threshold int, rule Rule) ([]*keygen.LocalKey, error) {
	pools := make([]*pool.Pool, n)
	for i := range pools {
		pools[i] = pool.NewPool(0)
	}
	defer func() {
		for _, pl := range pools {
			pl.TearDown()
		}
	}()

	outs := make([]chan *round.Message, n)
	for i := range outs {
		outs[i] = make(chan *round.Message, n)
	}

	// Round 0: sample key material, broadcast commitments and proofs.
	round0 := make([]*keygen.Round0, n)
	for i := range round0 {
		r, err := keygen.NewRound0(group, party.ID(i+1), threshold, n, pools[i])
		if err != nil {
			return nil, err
		}
		round0[i] = r
	}
	round1 := make([]*keygen.Round1, n)
	var g0 errgroup.Group
	for i := range round0 {
		i := i
		g0.Go(func() error {
			r, err := round0[i].Proceed(outs[i])
			round1[i] = r
			return err
		})
	}
	if err := g0.Wait(); err != nil {
		return nil, err
	}

	// Round 1: deliver the commitments, broadcast the decommitments.
	stores1 := make([]*round.BroadcastMsgs[*keygen.Broadcast1], n)
	for i, r := range round1 {
		stores1[i] = r.ExpectsMessages()
	}
	empty1 := func() *keygen.Broadcast1 { return &keygen.Broadcast1{} }
	if err := deliverBroadcast(drain(outs), stores1, empty1, rule); err != nil {
		return nil, err
	}
	round2 := make([]*keygen.Round2, n)
	var g1 errgroup.Group
	for i := range round1 {
		i := i
		g1.Go(func() error {
			r, err := round1[i].Proceed(stores1[i], outs[i])
			round2[i] = r
			return err
		})
	}
	if err := g1.Wait(); err != nil {
		return nil, err
	}

	// Round 2: deliver the decommitments, verify and send the shares.
	stores2 := make([]*round.BroadcastMsgs[*keygen.Broadcast2], n)
	for i, r := range round2 {
		stores2[i] = r.ExpectsMessages()
	}
	empty2 := func() *keygen.Broadcast2 { return keygen.EmptyBroadcast2(group) }
	if err := deliverBroadcast(drain(outs), stores2, empty2, rule); err != nil {
		return nil, err
	}
	round3 := make([]*keygen.Round3, n)
	var g2 errgroup.Group
	for i := range round2 {
		i := i
		g2.Go(func() error {
			r, err := round2[i].Proceed(stores2[i], outs[i])
			round3[i] = r
			return err
		})
	}
	if err := g2.Wait(); err != nil {
		return nil, err
	}

	// Round 3: deliver the shares, verify and broadcast the public shares.
	stores3 := make([]*round.P2PMsgs[*keygen.Message3], n)
	for i, r := range round3 {
		stores3[i] = r.ExpectsMessages()
	}
	empty3 := func() *keygen.Message3 { return keygen.EmptyMessage3(group) }
	if err := deliverP2P(drain(outs), stores3, empty3, rule); err != nil {
		return nil, err
	}
	round4 := make([]*keygen.Round4, n)
	var g3 errgroup.Group
	for i := range round3 {
		i := i
		g3.Go(func() error {
			r, err := round3[i].Proceed(stores3[i], outs[i])
			round4[i] = r
			return err
		})
	}
	if err := g3.Wait(); err != nil {
		return nil, err
	}

	// Round 4: deliver the proofs, assemble the keys.
	stores4 := make([]*round.BroadcastMsgs[*keygen.Broadcast4], n)
	for i, r := range round4 {
		stores4[i] = r.ExpectsMessages()
	}
	empty4 := func() *keygen.Broadcast4 { return keygen.EmptyBroadcast4(group) }
	if err := deliverBroadcast(drain(outs), stores4, empty4, rule); err != nil {
		return nil, err
	}
	keys := make([]*keygen.LocalKey, n)
	var g4 errgroup.Group
	for i := range round4 {
		i := i
		g4.Go(func() error {
			k, err := round4[i].Proceed(stores4[i])
			keys[i] = k
			return err
		})
	}
	if err := g4.Wait(); err != nil {
		return nil, err
	}
	return keys, nil
}

// deliverBroadcast fans a round's broadcasts out to every other party,
// decoding a fresh copy of the content per receiver.
func deliverBroadcast[T round.Content](msgs []*round.Message, stores []*round.BroadcastMsgs[T], empty func() T, rule Rule) error {
	for _, m := range msgs {
		if m.To != party.Broadcast {
			return fmt.Errorf("test: expected broadcast, got message for party %d", m.To)
		}
		for j := range stores {
			id := party.ID(j + 1)
			if id == m.From {
				continue
			}
			content := empty()
			if err := reencode(m.Content, content); err != nil {
				return err
			}
			delivered := &round.Message{From: m.From, To: m.To, Content: content}
			if rule != nil {
				rule(delivered)
			}
			if err := stores[j].Store(delivered.From, content); err != nil {
				return err
			}
		}
	}
	for j := range stores {
		if stores[j].WantsMore() {
			return fmt.Errorf("test: party %d is missing broadcasts", j+1)
		}
	}
	return nil
}

// deliverP2P routes direct messages to their receiver, decoding the
// content anew.
func deliverP2P[T round.Content](msgs []*round.Message, stores []*round.P2PMsgs[T], empty func() T, rule Rule) error {
	for _, m := range msgs {
		if m.To == party.Broadcast || int(m.To) > len(stores) {
			return fmt.Errorf("test: expected direct message, got one for party %d", m.To)
		}
		content := empty()
		if err := reencode(m.Content, content); err != nil {
			return err
		}
		delivered := &round.Message{From: m.From, To: m.To, Content: content}
		if rule != nil {
			rule(delivered)
		}
		if err := stores[m.To-1].Store(delivered.From, content); err != nil {
			return err
		}
	}
	for j := range stores {
		if stores[j].WantsMore() {
			return fmt.Errorf("test: party %d is missing messages", j+1)
		}
	}
	return nil
}

// reencode serializes content and decodes it into target, mimicking
// delivery over a real transport.
func reencode(content, target round.Content) error {
	data, err := cbor.Marshal(content)
	if err != nil {
		return err
	}
	return cbor.Unmarshal(data, target)
}

func drain(outs []chan *round.Message) []*round.Message {
	var msgs []*round.Message
	for _, out := range outs {
		for len(out) > 0 {
			msgs = append(msgs, <-out)
		}
	}
	return msgs
}
