package round

import (
	"errors"
	"sort"

	"github.com/quorumsig/gg20/pkg/party"
)

var (
	// ErrDuplicateMessage is returned when a sender's payload for this
	// round was already stored.
	ErrDuplicateMessage = errors.New("round: message already received")
	// ErrSelfMessage is returned when a party stores its own payload;
	// own contributions enter through IncludingSelf instead.
	ErrSelfMessage = errors.New("round: message from self")
	// ErrInvalidSender is returned when the sender is not a member of the
	// session, including the reserved zero ID.
	ErrInvalidSender = errors.New("round: sender outside of session")
)

// BroadcastMsgs collects the broadcast payloads of a single round from
// every party except the owner. It is a one-shot container: once complete
// it is consumed exactly once by IncludingSelf.
type BroadcastMsgs[T Content] struct {
	self     party.ID
	n        int
	msgs     map[party.ID]T
	consumed bool
}

// NewBroadcastMsgs returns an empty container for the broadcast payloads
// party self expects in a session of n parties.
func NewBroadcastMsgs[T Content](self party.ID, n int) *BroadcastMsgs[T] {
	return &BroadcastMsgs[T]{
		self: self,
		n:    n,
		msgs: make(map[party.ID]T, n-1),
	}
}

// Store records the payload received from the given sender.
func (b *BroadcastMsgs[T]) Store(from party.ID, content T) error {
	if err := checkSender(b.self, b.n, from); err != nil {
		return err
	}
	if _, ok := b.msgs[from]; ok {
		return ErrDuplicateMessage
	}
	b.msgs[from] = content
	return nil
}

// WantsMore reports whether payloads are still missing.
func (b *BroadcastMsgs[T]) WantsMore() bool {
	return len(b.msgs) < b.n-1
}

// IncludingSelf merges the owner's payload with the received ones and
// returns the length-n vector ordered by party index, consuming the
// container. It panics when payloads are missing or the container was
// already consumed.
func (b *BroadcastMsgs[T]) IncludingSelf(own T) []T {
	if b.consumed {
		panic("round: broadcast store already consumed")
	}
	if b.WantsMore() {
		panic("round: broadcast store is incomplete")
	}
	b.consumed = true

	out := make([]T, b.n)
	out[b.self-1] = own
	for id, content := range b.msgs {
		out[id-1] = content
	}
	b.msgs = nil
	return out
}

// IndexedMessage pairs a P2P payload with its sender.
type IndexedMessage[T Content] struct {
	From    party.ID
	Content T
}

// P2PMsgs collects the direct payloads of a single round addressed to the
// owner, one from every other party. Like BroadcastMsgs it is one-shot.
type P2PMsgs[T Content] struct {
	self     party.ID
	n        int
	msgs     map[party.ID]T
	consumed bool
}

// NewP2PMsgs returns an empty container for the direct payloads party
// self expects in a session of n parties.
func NewP2PMsgs[T Content](self party.ID, n int) *P2PMsgs[T] {
	return &P2PMsgs[T]{
		self: self,
		n:    n,
		msgs: make(map[party.ID]T, n-1),
	}
}

// Store records the payload received from the given sender.
func (p *P2PMsgs[T]) Store(from party.ID, content T) error {
	if err := checkSender(p.self, p.n, from); err != nil {
		return err
	}
	if _, ok := p.msgs[from]; ok {
		return ErrDuplicateMessage
	}
	p.msgs[from] = content
	return nil
}

// WantsMore reports whether payloads are still missing.
func (p *P2PMsgs[T]) WantsMore() bool {
	return len(p.msgs) < p.n-1
}

// Indexed returns the received payloads paired with their senders, in
// ascending sender order, consuming the container. It panics when
// payloads are missing or the container was already consumed.
func (p *P2PMsgs[T]) Indexed() []IndexedMessage[T] {
	if p.consumed {
		panic("round: p2p store already consumed")
	}
	if p.WantsMore() {
		panic("round: p2p store is incomplete")
	}
	p.consumed = true

	out := make([]IndexedMessage[T], 0, len(p.msgs))
	for id, content := range p.msgs {
		out = append(out, IndexedMessage[T]{From: id, Content: content})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].From < out[j].From })
	p.msgs = nil
	return out
}

func checkSender(self party.ID, n int, from party.ID) error {
	if from == self {
		return ErrSelfMessage
	}
	if from == 0 || int(from) > n {
		return ErrInvalidSender
	}
	return nil
}
