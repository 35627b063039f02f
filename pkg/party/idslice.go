package party

import (
	"encoding/binary"
	"io"
	"sort"
)

// IDSlice is a sorted slice of IDs.
type IDSlice []ID

// NewIDSlice returns a sorted copy of ids.
func NewIDSlice(ids []ID) IDSlice {
	out := make(IDSlice, len(ids))
	copy(out, ids)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// RangeN returns the IDSlice {1, 2, …, n}, the canonical party set of a
// session with n participants.
func RangeN(n int) IDSlice {
	out := make(IDSlice, n)
	for i := range out {
		out[i] = ID(i + 1)
	}
	return out
}

// Valid returns true if the slice is sorted, contains no duplicates, and
// no reserved zero ID.
func (ids IDSlice) Valid() bool {
	for i, id := range ids {
		if id == 0 {
			return false
		}
		if i > 0 && ids[i-1] >= id {
			return false
		}
	}
	return true
}

// Contains returns true if ids contains id.
// Assumes that ids is sorted.
func (ids IDSlice) Contains(id ID) bool {
	_, ok := ids.Search(id)
	return ok
}

// GetIndex returns the index of id in ids, or -1 if it is absent.
// Assumes that ids is sorted.
func (ids IDSlice) GetIndex(id ID) int {
	if idx, ok := ids.Search(id); ok {
		return idx
	}
	return -1
}

// Search performs a binary search for id.
func (ids IDSlice) Search(id ID) (int, bool) {
	index := sort.Search(len(ids), func(i int) bool { return ids[i] >= id })
	if index >= 0 && index < len(ids) && ids[index] == id {
		return index, true
	}
	return 0, false
}

// Remove returns a copy of ids with id removed.
func (ids IDSlice) Remove(id ID) IDSlice {
	out := make(IDSlice, 0, len(ids))
	for _, other := range ids {
		if other != id {
			out = append(out, other)
		}
	}
	return out
}

// Copy returns a copy of ids.
func (ids IDSlice) Copy() IDSlice {
	out := make(IDSlice, len(ids))
	copy(out, ids)
	return out
}

// WriteTo implements io.WriterTo and should be used within the hash.Hash function.
func (ids IDSlice) WriteTo(w io.Writer) (int64, error) {
	if err := binary.Write(w, binary.BigEndian, uint64(len(ids))); err != nil {
		return 0, err
	}
	nAll := int64(8)
	for _, id := range ids {
		n, err := w.Write(id.Bytes())
		nAll += int64(n)
		if err != nil {
			return nAll, err
		}
	}
	return nAll, nil
}

// Domain implements hash.WriterToWithDomain.
func (IDSlice) Domain() string {
	return "IDSlice"
}
