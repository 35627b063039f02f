package round

import (
	"errors"

	"github.com/quorumsig/gg20/pkg/party"
)

// ErrOutChanFull is returned when the out channel cannot accept another
// message. The channel is expected to be buffered with enough capacity
// for a full round of messages.
var ErrOutChanFull = errors.New("round: out channel is full")

// Content represents a message payload, either broadcast or P2P, produced
// by a round during its transition.
type Content interface {
	RoundNumber() Number
}

// Message is what is sent between parties.
// To == party.Broadcast indicates the message is destined for all other parties.
type Message struct {
	From, To party.ID
	Content  Content
}

// Broadcast queues content addressed to every other party.
// It never blocks; a full channel yields ErrOutChanFull.
func Broadcast(out chan<- *Message, from party.ID, content Content) error {
	return send(out, &Message{From: from, To: party.Broadcast, Content: content})
}

// SendTo queues content addressed to the single party to.
// It never blocks; a full channel yields ErrOutChanFull.
func SendTo(out chan<- *Message, from, to party.ID, content Content) error {
	return send(out, &Message{From: from, To: to, Content: content})
}

func send(out chan<- *Message, msg *Message) error {
	select {
	case out <- msg:
		return nil
	default:
		return ErrOutChanFull
	}
}
