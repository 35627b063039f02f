package round

import (
	"encoding/binary"
	"io"
)

// Number is the index of the current round.
// 0 is the initialization round; messages produced by round r carry r+1.
type Number uint16

// WriteTo implements io.WriterTo interface.
func (i Number) WriteTo(w io.Writer) (int64, error) {
	buf := make([]byte, 2)
	binary.BigEndian.PutUint16(buf, uint16(i))
	n, err := w.Write(buf)
	return int64(n), err
}

// Domain implements hash.WriterToWithDomain.
func (Number) Domain() string {
	return "Round Number"
}
