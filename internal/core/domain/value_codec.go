package domain

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"math"

	"go.trai.ch/zerr"
)

var errMalformedSnapshot = zerr.New("malformed value snapshot encoding")

// DecodeValueSnapshot parses a canonical encoding produced by AppendEncoding.
func DecodeValueSnapshot(b []byte) (ValueSnapshot, error) {
	d := decoder{buf: b}
	v := d.value()
	if d.err != nil {
		return nil, d.err
	}
	if d.pos != len(d.buf) {
		return nil, zerr.With(errMalformedSnapshot, "trailing_bytes", len(d.buf)-d.pos)
	}
	return v, nil
}

type decoder struct {
	buf []byte
	pos int
	err error
}

func (d *decoder) fail() {
	if d.err == nil {
		d.err = zerr.With(errMalformedSnapshot, "offset", d.pos)
	}
}

func (d *decoder) readByte() byte {
	if d.err != nil || d.pos >= len(d.buf) {
		d.fail()
		return 0
	}
	c := d.buf[d.pos]
	d.pos++
	return c
}

func (d *decoder) uvarint() uint64 {
	if d.err != nil {
		return 0
	}
	v, n := binary.Uvarint(d.buf[d.pos:])
	if n <= 0 {
		d.fail()
		return 0
	}
	d.pos += n
	return v
}

func (d *decoder) varint() int64 {
	if d.err != nil {
		return 0
	}
	v, n := binary.Varint(d.buf[d.pos:])
	if n <= 0 {
		d.fail()
		return 0
	}
	d.pos += n
	return v
}

func (d *decoder) raw(n uint64) []byte {
	if d.err != nil || n > uint64(len(d.buf)-d.pos) {
		d.fail()
		return nil
	}
	out := d.buf[d.pos : d.pos+int(n)]
	d.pos += int(n)
	return out
}

func (d *decoder) readString() string {
	return string(d.raw(d.uvarint()))
}

// count reads a collection length, bounded by the remaining input.
func (d *decoder) count() int {
	n := d.uvarint()
	if n > uint64(len(d.buf)-d.pos) {
		d.fail()
		return 0
	}
	return int(n)
}

func (d *decoder) value() ValueSnapshot {
	switch ValueKind(d.readByte()) {
	case KindNull:
		return Null
	case KindString:
		return &StringSnapshot{Value: d.readString()}
	case KindBool:
		return &BoolSnapshot{Value: d.readByte() == 1}
	case KindInt:
		return &IntSnapshot{Value: d.varint()}
	case KindUint:
		return &UintSnapshot{Value: d.uvarint()}
	case KindFloat:
		bits := d.raw(8)
		if d.err != nil {
			return nil
		}
		return &FloatSnapshot{Value: math.Float64frombits(binary.LittleEndian.Uint64(bits))}
	case KindBytes:
		return &BytesSnapshot{Value: append([]byte(nil), d.raw(d.uvarint())...)}
	case KindList:
		n := d.count()
		elems := make([]ValueSnapshot, 0, n)
		for range n {
			elems = append(elems, d.value())
		}
		return &ListSnapshot{Elements: elems}
	case KindMap:
		n := d.count()
		entries := make([]MapEntry, 0, n)
		for range n {
			k := d.value()
			entries = append(entries, MapEntry{Key: k, Value: d.value()})
		}
		return &MapSnapshot{Entries: entries}
	case KindStruct:
		typ := d.readString()
		n := d.count()
		fields := make([]FieldSnapshot, 0, n)
		for range n {
			name := d.readString()
			fields = append(fields, FieldSnapshot{Name: name, Value: d.value()})
		}
		return &StructSnapshot{Type: typ, Fields: fields}
	case KindCustom:
		typ := d.readString()
		return &CustomSnapshot{Type: typ, Value: d.value()}
	default:
		d.fail()
		return nil
	}
}

// PersistedValue wraps a ValueSnapshot for JSON persistence.
type PersistedValue struct {
	ValueSnapshot
}

// MarshalJSON encodes the snapshot as base64 of its canonical encoding.
func (p PersistedValue) MarshalJSON() ([]byte, error) {
	if p.ValueSnapshot == nil {
		return []byte("null"), nil
	}
	return json.Marshal(base64.StdEncoding.EncodeToString(p.AppendEncoding(nil)))
}

// UnmarshalJSON decodes a snapshot written by MarshalJSON.
func (p *PersistedValue) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil {
		p.ValueSnapshot = nil
		return nil
	}
	raw, err := base64.StdEncoding.DecodeString(*s)
	if err != nil {
		return zerr.Wrap(err, errMalformedSnapshot.Error())
	}
	v, err := DecodeValueSnapshot(raw)
	if err != nil {
		return err
	}
	p.ValueSnapshot = v
	return nil
}
