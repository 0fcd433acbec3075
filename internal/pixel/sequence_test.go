package pixel

import (
	"errors"
	"slices"
	"testing"
)

// rec builds a record whose channels all equal v.
func rec(row, col, v int) Record {
	return Record{Red: v, Green: v, Blue: v, Row: row, Col: col}
}

func sequenceOf(records ...Record) *Sequence {
	s := NewSequence()
	for _, r := range records {
		s.Insert(r)
	}
	return s
}

func TestSequence_ZeroValue(t *testing.T) {
	var s Sequence
	if s.Len() != 0 {
		t.Errorf("Len: got %d, want 0", s.Len())
	}
	s.Insert(rec(0, 0, 1))
	if s.Len() != 1 {
		t.Errorf("Len after Insert: got %d, want 1", s.Len())
	}
}

func TestSequence_InsertOrder(t *testing.T) {
	s := sequenceOf(rec(0, 0, 1), rec(0, 1, 2), rec(1, 0, 3))

	got := s.Records()
	want := []Record{rec(0, 0, 1), rec(0, 1, 2), rec(1, 0, 3)}
	if !slices.Equal(got, want) {
		t.Errorf("Records: got %v, want %v", got, want)
	}
}

func TestSequence_Peek(t *testing.T) {
	s := NewSequence()
	if _, err := s.Peek(); !errors.Is(err, ErrEmptyContainer) {
		t.Fatalf("Peek on empty: got %v, want ErrEmptyContainer", err)
	}

	s.Insert(rec(4, 5, 10))
	s.Insert(rec(6, 7, 20))

	first, err := s.Peek()
	if err != nil {
		t.Fatalf("Peek failed: %v", err)
	}
	if first != rec(4, 5, 10) {
		t.Errorf("Peek: got %v, want first inserted record", first)
	}
}

func TestSequence_MergeIndependence(t *testing.T) {
	a := sequenceOf(rec(0, 0, 1), rec(0, 1, 2))
	b := sequenceOf(rec(1, 0, 3))

	a.Merge(b)
	if a.Len() != 3 {
		t.Fatalf("Len after Merge: got %d, want 3", a.Len())
	}
	if b.Len() != 1 {
		t.Errorf("Merge modified its argument: Len %d", b.Len())
	}

	b.Insert(rec(1, 1, 4))
	if a.Len() != 3 {
		t.Errorf("later Insert into merged sequence leaked: Len %d", a.Len())
	}

	a.Insert(rec(2, 0, 5))
	if b.Len() != 2 {
		t.Errorf("later Insert into receiver leaked: Len %d", b.Len())
	}

	want := []Record{rec(0, 0, 1), rec(0, 1, 2), rec(1, 0, 3), rec(2, 0, 5)}
	if got := a.Records(); !slices.Equal(got, want) {
		t.Errorf("Records: got %v, want %v", got, want)
	}
}

func TestSequence_MergeEmptyAndNil(t *testing.T) {
	a := sequenceOf(rec(0, 0, 1))
	it := a.Iterator()

	a.Merge(NewSequence())
	a.Merge(nil)

	if a.Len() != 1 {
		t.Errorf("Len: got %d, want 1", a.Len())
	}
	// No-op merges do not invalidate iterators.
	if !it.Next() {
		t.Errorf("iterator stopped after no-op merge: %v", it.Err())
	}
}

func TestSequence_MergeIntoEmpty(t *testing.T) {
	a := NewSequence()
	b := sequenceOf(rec(0, 0, 1), rec(0, 1, 2))

	a.Merge(b)
	if !slices.Equal(a.Records(), b.Records()) {
		t.Errorf("Records: got %v, want %v", a.Records(), b.Records())
	}
}

func TestSequence_MergeSelf(t *testing.T) {
	s := sequenceOf(rec(0, 0, 1), rec(0, 1, 2))

	s.Merge(s)

	want := []Record{rec(0, 0, 1), rec(0, 1, 2), rec(0, 0, 1), rec(0, 1, 2)}
	if got := s.Records(); !slices.Equal(got, want) {
		t.Errorf("Records: got %v, want %v", got, want)
	}
}

func TestSequence_CloneIndependence(t *testing.T) {
	orig := sequenceOf(rec(0, 0, 1), rec(0, 1, 2))
	cp := orig.Clone()

	if !slices.Equal(cp.Records(), orig.Records()) {
		t.Fatalf("Clone: got %v, want %v", cp.Records(), orig.Records())
	}

	cp.Insert(rec(9, 9, 9))
	if orig.Len() != 2 {
		t.Errorf("Insert into clone changed original: Len %d", orig.Len())
	}

	orig.Insert(rec(8, 8, 8))
	if cp.Len() != 3 {
		t.Errorf("Insert into original changed clone: Len %d", cp.Len())
	}

	if empty := NewSequence().Clone(); empty.Len() != 0 {
		t.Errorf("clone of empty: Len %d", empty.Len())
	}
}

func TestSequence_Assign(t *testing.T) {
	a := sequenceOf(rec(0, 0, 1))
	b := sequenceOf(rec(1, 1, 2), rec(2, 2, 3))

	a.Assign(b)
	if !slices.Equal(a.Records(), b.Records()) {
		t.Fatalf("Assign: got %v, want %v", a.Records(), b.Records())
	}

	b.Insert(rec(3, 3, 4))
	if a.Len() != 2 {
		t.Errorf("Insert into source after Assign leaked: Len %d", a.Len())
	}

	a.Assign(NewSequence())
	if a.Len() != 0 {
		t.Errorf("Assign from empty: Len %d, want 0", a.Len())
	}
}

func TestSequence_AssignSelf(t *testing.T) {
	s := sequenceOf(rec(0, 0, 1), rec(0, 1, 2))
	it := s.Iterator()

	s.Assign(s)

	if s.Len() != 2 {
		t.Errorf("Len: got %d, want 2", s.Len())
	}
	if !it.Next() {
		t.Errorf("self-assignment invalidated iterator: %v", it.Err())
	}
}

func TestSequence_Records_ReturnsCopy(t *testing.T) {
	s := sequenceOf(rec(0, 0, 1))

	got := s.Records()
	got[0].Red = 200

	first, _ := s.Peek()
	if first.Red != 1 {
		t.Errorf("mutating Records result changed sequence: %v", first)
	}
}

func TestSequence_All(t *testing.T) {
	s := sequenceOf(rec(0, 0, 1), rec(0, 1, 2), rec(0, 2, 3))

	var got []Record
	for r := range s.All() {
		got = append(got, r)
	}
	if !slices.Equal(got, s.Records()) {
		t.Errorf("All: got %v, want %v", got, s.Records())
	}

	// Early exit
	count := 0
	for range s.All() {
		count++
		break
	}
	if count != 1 {
		t.Errorf("break: visited %d records, want 1", count)
	}
}

func TestSequence_All_Snapshot(t *testing.T) {
	s := sequenceOf(rec(0, 0, 1), rec(0, 1, 2))

	visited := 0
	for range s.All() {
		visited++
		s.Insert(rec(5, 5, 5))
	}
	if visited != 2 {
		t.Errorf("visited %d records, want 2", visited)
	}
	if s.Len() != 4 {
		t.Errorf("Len: got %d, want 4", s.Len())
	}
}

func TestIterator(t *testing.T) {
	s := sequenceOf(rec(0, 0, 1), rec(0, 1, 2), rec(0, 2, 3))

	it := s.Iterator()
	var got []Record
	for it.Next() {
		got = append(got, it.Record())
	}
	if err := it.Err(); err != nil {
		t.Fatalf("Err: %v", err)
	}
	if !slices.Equal(got, s.Records()) {
		t.Errorf("iterated %v, want %v", got, s.Records())
	}
	if it.Next() {
		t.Error("Next after end should keep returning false")
	}
}

func TestIterator_Empty(t *testing.T) {
	it := NewSequence().Iterator()
	if it.Next() {
		t.Error("Next on empty sequence should return false")
	}
	if it.Err() != nil {
		t.Errorf("Err: got %v, want nil", it.Err())
	}
}

func TestIterator_ConcurrentModification(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Sequence)
	}{
		{"insert", func(s *Sequence) { s.Insert(rec(9, 9, 9)) }},
		{"merge", func(s *Sequence) { s.Merge(sequenceOf(rec(9, 9, 9))) }},
		{"assign", func(s *Sequence) { s.Assign(sequenceOf(rec(9, 9, 9))) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := sequenceOf(rec(0, 0, 1), rec(0, 1, 2))
			it := s.Iterator()
			if !it.Next() {
				t.Fatal("first Next should succeed")
			}

			tt.mutate(s)

			if it.Next() {
				t.Fatal("Next after mutation should return false")
			}
			if !errors.Is(it.Err(), ErrConcurrentModification) {
				t.Errorf("Err: got %v, want ErrConcurrentModification", it.Err())
			}
			if it.Next() {
				t.Error("iterator should stay stopped")
			}
		})
	}
}

func TestIterator_MutationOfOtherSequence(t *testing.T) {
	a := sequenceOf(rec(0, 0, 1))
	b := a.Clone()
	it := a.Iterator()

	b.Insert(rec(1, 1, 1))

	if !it.Next() {
		t.Errorf("mutating a clone invalidated iterator: %v", it.Err())
	}
}
