package pixel

import (
	"errors"
	"iter"
	"slices"
)

var (
	// ErrEmptyContainer is returned when an operation needs at least one
	// element, such as Peek or averaging, and the sequence is empty.
	ErrEmptyContainer = errors.New("pixel sequence is empty")

	// ErrConcurrentModification is reported by an Iterator whose source
	// sequence was mutated after the iterator was created.
	ErrConcurrentModification = errors.New("pixel sequence modified during iteration")
)

// Sequence is an ordered collection of pixel records.
//
// The zero value is an empty sequence ready for use. Elements are kept in
// insertion order; Merge appends the other sequence's elements after the
// receiver's.
type Sequence struct {
	records []Record
	version uint64
}

// NewSequence returns an empty sequence.
func NewSequence() *Sequence {
	return &Sequence{}
}

// Clone returns a deep copy of s. The copy shares no storage with s.
func (s *Sequence) Clone() *Sequence {
	return &Sequence{records: slices.Clone(s.records)}
}

// Assign replaces the contents of s with a copy of other's elements.
// Assigning a sequence to itself leaves it untouched.
func (s *Sequence) Assign(other *Sequence) {
	if s == other {
		return
	}
	if other == nil || len(other.records) == 0 {
		s.records = nil
	} else {
		s.records = slices.Clone(other.records)
	}
	s.version++
}

// Insert adds r to the sequence.
func (s *Sequence) Insert(r Record) {
	s.records = append(s.records, r)
	s.version++
}

// Len returns the number of records in the sequence.
func (s *Sequence) Len() int {
	return len(s.records)
}

// Peek returns the first record inserted into the sequence. Region growth
// uses it as the similarity anchor.
func (s *Sequence) Peek() (Record, error) {
	if len(s.records) == 0 {
		return Record{}, ErrEmptyContainer
	}
	return s.records[0], nil
}

// Merge appends a copy of every record in other to s. other is not
// modified, and later changes to either sequence are not visible in the
// other. Merging a nil or empty sequence is a no-op.
func (s *Sequence) Merge(other *Sequence) {
	if other == nil || len(other.records) == 0 {
		return
	}
	// Snapshot first so that s.Merge(s) doubles the sequence cleanly.
	src := other.records
	s.records = append(slices.Grow(s.records, len(src)), src...)
	s.version++
}

// Records returns a copy of the sequence's elements in iteration order.
func (s *Sequence) Records() []Record {
	return slices.Clone(s.records)
}

// All returns an iterator over the records of s.
//
// Each iteration ranges over the elements present when that iteration
// started; records inserted later are not visited. The returned sequence
// can be ranged over any number of times.
func (s *Sequence) All() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		snapshot := s.records[:len(s.records):len(s.records)]
		for _, r := range snapshot {
			if !yield(r) {
				return
			}
		}
	}
}

// Iterator returns a fail-fast cursor positioned before the first record.
func (s *Sequence) Iterator() *Iterator {
	return &Iterator{seq: s, pos: -1, version: s.version}
}

// Iterator walks a Sequence one record at a time.
//
//	it := seq.Iterator()
//	for it.Next() {
//	    r := it.Record()
//	    ...
//	}
//	if err := it.Err(); err != nil {
//	    ...
//	}
type Iterator struct {
	seq     *Sequence
	pos     int
	version uint64
	err     error
}

// Next advances to the next record. It returns false at the end of the
// sequence or when the sequence was modified after the iterator was created.
func (it *Iterator) Next() bool {
	if it.err != nil {
		return false
	}
	if it.seq.version != it.version {
		it.err = ErrConcurrentModification
		return false
	}
	if it.pos+1 >= len(it.seq.records) {
		it.pos = len(it.seq.records)
		return false
	}
	it.pos++
	return true
}

// Record returns the record at the current position. It must only be
// called after a call to Next returned true.
func (it *Iterator) Record() Record {
	return it.seq.records[it.pos]
}

// Err returns the error that stopped iteration, if any.
func (it *Iterator) Err() error {
	return it.err
}
