package domain

import (
	"bytes"
	"encoding/binary"
	"math"
	"slices"
)

// ValueKind discriminates the concrete ValueSnapshot types.
type ValueKind uint8

const (
	// KindNull is the snapshot of nil.
	KindNull ValueKind = iota + 1
	// KindString is the snapshot of a string.
	KindString
	// KindBool is the snapshot of a boolean.
	KindBool
	// KindInt is the snapshot of a signed integer.
	KindInt
	// KindUint is the snapshot of an unsigned integer.
	KindUint
	// KindFloat is the snapshot of a floating point number.
	KindFloat
	// KindBytes is the snapshot of a byte slice.
	KindBytes
	// KindList is the snapshot of a slice or array.
	KindList
	// KindMap is the snapshot of a map.
	KindMap
	// KindStruct is the snapshot of a struct's exported fields.
	KindStruct
	// KindCustom is the snapshot of a value that describes itself.
	KindCustom
)

var kindNames = map[ValueKind]string{
	KindNull:   "null",
	KindString: "string",
	KindBool:   "bool",
	KindInt:    "int",
	KindUint:   "uint",
	KindFloat:  "float",
	KindBytes:  "bytes",
	KindList:   "list",
	KindMap:    "map",
	KindStruct: "struct",
	KindCustom: "custom",
}

// String returns the kind's name.
func (k ValueKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ValueSnapshot is an immutable, comparable capture of an input value.
//
// Two snapshots are equal iff their canonical encodings are equal. Concrete
// snapshots are pointers so that an unchanged value can keep the identity of
// the snapshot taken on a previous run.
type ValueSnapshot interface {
	Kind() ValueKind
	Equal(other ValueSnapshot) bool
	// AppendEncoding appends the canonical encoding of the snapshot to b.
	AppendEncoding(b []byte) []byte
}

// SnapshotMarshaler is implemented by values that describe their own snapshot.
// The returned value is snapshotted in place of the receiver.
type SnapshotMarshaler interface {
	SnapshotValue() (any, error)
}

// EncodeValueSnapshot returns the canonical encoding of v.
func EncodeValueSnapshot(v ValueSnapshot) []byte {
	return v.AppendEncoding(nil)
}

func equalEncoding(a, b ValueSnapshot) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind() != b.Kind() {
		return false
	}
	return bytes.Equal(a.AppendEncoding(nil), b.AppendEncoding(nil))
}

func appendString(b []byte, s string) []byte {
	b = binary.AppendUvarint(b, uint64(len(s)))
	return append(b, s...)
}

// NullSnapshot is the snapshot of nil.
type NullSnapshot struct{}

// Null is the shared null snapshot.
var Null = &NullSnapshot{}

// Kind implements ValueSnapshot.
func (*NullSnapshot) Kind() ValueKind { return KindNull }

// Equal implements ValueSnapshot.
func (*NullSnapshot) Equal(other ValueSnapshot) bool {
	return other != nil && other.Kind() == KindNull
}

// AppendEncoding implements ValueSnapshot.
func (*NullSnapshot) AppendEncoding(b []byte) []byte { return append(b, byte(KindNull)) }

// StringSnapshot is the snapshot of a string.
type StringSnapshot struct{ Value string }

// Kind implements ValueSnapshot.
func (*StringSnapshot) Kind() ValueKind { return KindString }

// Equal implements ValueSnapshot.
func (s *StringSnapshot) Equal(other ValueSnapshot) bool {
	o, ok := other.(*StringSnapshot)
	return ok && o.Value == s.Value
}

// AppendEncoding implements ValueSnapshot.
func (s *StringSnapshot) AppendEncoding(b []byte) []byte {
	return appendString(append(b, byte(KindString)), s.Value)
}

// BoolSnapshot is the snapshot of a boolean.
type BoolSnapshot struct{ Value bool }

// Kind implements ValueSnapshot.
func (*BoolSnapshot) Kind() ValueKind { return KindBool }

// Equal implements ValueSnapshot.
func (s *BoolSnapshot) Equal(other ValueSnapshot) bool {
	o, ok := other.(*BoolSnapshot)
	return ok && o.Value == s.Value
}

// AppendEncoding implements ValueSnapshot.
func (s *BoolSnapshot) AppendEncoding(b []byte) []byte {
	if s.Value {
		return append(b, byte(KindBool), 1)
	}
	return append(b, byte(KindBool), 0)
}

// IntSnapshot is the snapshot of any signed integer.
type IntSnapshot struct{ Value int64 }

// Kind implements ValueSnapshot.
func (*IntSnapshot) Kind() ValueKind { return KindInt }

// Equal implements ValueSnapshot.
func (s *IntSnapshot) Equal(other ValueSnapshot) bool {
	o, ok := other.(*IntSnapshot)
	return ok && o.Value == s.Value
}

// AppendEncoding implements ValueSnapshot.
func (s *IntSnapshot) AppendEncoding(b []byte) []byte {
	return binary.AppendVarint(append(b, byte(KindInt)), s.Value)
}

// UintSnapshot is the snapshot of any unsigned integer.
type UintSnapshot struct{ Value uint64 }

// Kind implements ValueSnapshot.
func (*UintSnapshot) Kind() ValueKind { return KindUint }

// Equal implements ValueSnapshot.
func (s *UintSnapshot) Equal(other ValueSnapshot) bool {
	o, ok := other.(*UintSnapshot)
	return ok && o.Value == s.Value
}

// AppendEncoding implements ValueSnapshot.
func (s *UintSnapshot) AppendEncoding(b []byte) []byte {
	return binary.AppendUvarint(append(b, byte(KindUint)), s.Value)
}

// FloatSnapshot is the snapshot of a floating point number, compared bitwise.
type FloatSnapshot struct{ Value float64 }

// Kind implements ValueSnapshot.
func (*FloatSnapshot) Kind() ValueKind { return KindFloat }

// Equal implements ValueSnapshot.
func (s *FloatSnapshot) Equal(other ValueSnapshot) bool {
	o, ok := other.(*FloatSnapshot)
	return ok && math.Float64bits(o.Value) == math.Float64bits(s.Value)
}

// AppendEncoding implements ValueSnapshot.
func (s *FloatSnapshot) AppendEncoding(b []byte) []byte {
	return binary.LittleEndian.AppendUint64(append(b, byte(KindFloat)), math.Float64bits(s.Value))
}

// BytesSnapshot is the snapshot of a byte slice. Value must not be mutated.
type BytesSnapshot struct{ Value []byte }

// Kind implements ValueSnapshot.
func (*BytesSnapshot) Kind() ValueKind { return KindBytes }

// Equal implements ValueSnapshot.
func (s *BytesSnapshot) Equal(other ValueSnapshot) bool {
	o, ok := other.(*BytesSnapshot)
	return ok && bytes.Equal(o.Value, s.Value)
}

// AppendEncoding implements ValueSnapshot.
func (s *BytesSnapshot) AppendEncoding(b []byte) []byte {
	b = binary.AppendUvarint(append(b, byte(KindBytes)), uint64(len(s.Value)))
	return append(b, s.Value...)
}

// ListSnapshot is the snapshot of a slice or array, in element order.
type ListSnapshot struct{ Elements []ValueSnapshot }

// Kind implements ValueSnapshot.
func (*ListSnapshot) Kind() ValueKind { return KindList }

// Equal implements ValueSnapshot.
func (s *ListSnapshot) Equal(other ValueSnapshot) bool {
	o, ok := other.(*ListSnapshot)
	if !ok {
		return false
	}
	return slices.EqualFunc(s.Elements, o.Elements, func(a, b ValueSnapshot) bool { return a.Equal(b) })
}

// AppendEncoding implements ValueSnapshot.
func (s *ListSnapshot) AppendEncoding(b []byte) []byte {
	b = binary.AppendUvarint(append(b, byte(KindList)), uint64(len(s.Elements)))
	for _, e := range s.Elements {
		b = e.AppendEncoding(b)
	}
	return b
}

// MapEntry is a single key/value pair of a MapSnapshot.
type MapEntry struct {
	Key   ValueSnapshot
	Value ValueSnapshot
}

// MapSnapshot is the snapshot of a map. Entries are sorted by the canonical
// encoding of their keys, then of their values.
type MapSnapshot struct{ Entries []MapEntry }

// NewMapSnapshot sorts entries and returns the snapshot. Distinct Go keys may
// share an encoding (int(1) and int64(1)), so ties are broken by value.
func NewMapSnapshot(entries []MapEntry) *MapSnapshot {
	type sortable struct {
		key, value []byte
		entry      MapEntry
	}
	sorted := make([]sortable, len(entries))
	for i, e := range entries {
		sorted[i] = sortable{key: e.Key.AppendEncoding(nil), value: e.Value.AppendEncoding(nil), entry: e}
	}
	slices.SortFunc(sorted, func(a, b sortable) int {
		if c := bytes.Compare(a.key, b.key); c != 0 {
			return c
		}
		return bytes.Compare(a.value, b.value)
	})
	for i := range sorted {
		entries[i] = sorted[i].entry
	}
	return &MapSnapshot{Entries: entries}
}

// Kind implements ValueSnapshot.
func (*MapSnapshot) Kind() ValueKind { return KindMap }

// Equal implements ValueSnapshot.
func (s *MapSnapshot) Equal(other ValueSnapshot) bool {
	o, ok := other.(*MapSnapshot)
	if !ok {
		return false
	}
	return slices.EqualFunc(s.Entries, o.Entries, func(a, b MapEntry) bool {
		return a.Key.Equal(b.Key) && a.Value.Equal(b.Value)
	})
}

// AppendEncoding implements ValueSnapshot.
func (s *MapSnapshot) AppendEncoding(b []byte) []byte {
	b = binary.AppendUvarint(append(b, byte(KindMap)), uint64(len(s.Entries)))
	for _, e := range s.Entries {
		b = e.Key.AppendEncoding(b)
		b = e.Value.AppendEncoding(b)
	}
	return b
}

// FieldSnapshot is a named field of a StructSnapshot.
type FieldSnapshot struct {
	Name  string
	Value ValueSnapshot
}

// StructSnapshot is the snapshot of a struct's exported fields, sorted by name.
type StructSnapshot struct {
	Type   string
	Fields []FieldSnapshot
}

// Kind implements ValueSnapshot.
func (*StructSnapshot) Kind() ValueKind { return KindStruct }

// Equal implements ValueSnapshot.
func (s *StructSnapshot) Equal(other ValueSnapshot) bool {
	o, ok := other.(*StructSnapshot)
	if !ok || o.Type != s.Type {
		return false
	}
	return slices.EqualFunc(s.Fields, o.Fields, func(a, b FieldSnapshot) bool {
		return a.Name == b.Name && a.Value.Equal(b.Value)
	})
}

// AppendEncoding implements ValueSnapshot.
func (s *StructSnapshot) AppendEncoding(b []byte) []byte {
	b = appendString(append(b, byte(KindStruct)), s.Type)
	b = binary.AppendUvarint(b, uint64(len(s.Fields)))
	for _, f := range s.Fields {
		b = appendString(b, f.Name)
		b = f.Value.AppendEncoding(b)
	}
	return b
}

// CustomSnapshot is the snapshot of a value that provided its own representation,
// either through SnapshotMarshaler or encoding.TextMarshaler.
type CustomSnapshot struct {
	Type  string
	Value ValueSnapshot
}

// Kind implements ValueSnapshot.
func (*CustomSnapshot) Kind() ValueKind { return KindCustom }

// Equal implements ValueSnapshot.
func (s *CustomSnapshot) Equal(other ValueSnapshot) bool {
	o, ok := other.(*CustomSnapshot)
	return ok && o.Type == s.Type && s.Value.Equal(o.Value)
}

// AppendEncoding implements ValueSnapshot.
func (s *CustomSnapshot) AppendEncoding(b []byte) []byte {
	b = appendString(append(b, byte(KindCustom)), s.Type)
	return s.Value.AppendEncoding(b)
}

// EqualValueSnapshots reports whether two possibly-nil snapshots are equal.
func EqualValueSnapshots(a, b ValueSnapshot) bool {
	return equalEncoding(a, b)
}
