// Package snapshot converts arbitrary input values into immutable value snapshots.
package snapshot

import (
	"cmp"
	"encoding"
	"reflect"
	"slices"
	"sync"

	"go.trai.ch/avert/internal/core/domain"
	"go.trai.ch/avert/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ValueSnapshotter = (*Snapshotter)(nil)

// maxDepth bounds the nesting of snapshotted values.
const maxDepth = 256

var (
	snapshotMarshalerType = reflect.TypeFor[domain.SnapshotMarshaler]()
	textMarshalerType     = reflect.TypeFor[encoding.TextMarshaler]()
)

type fieldInfo struct {
	name  string
	index int
}

// Snapshotter snapshots values by reflection. It is safe for concurrent use;
// the only state it keeps is a cache of struct layouts.
type Snapshotter struct {
	fields sync.Map // reflect.Type -> []fieldInfo
}

// New creates a new Snapshotter.
func New() *Snapshotter {
	return &Snapshotter{}
}

// Snapshot implements ports.ValueSnapshotter.
func (s *Snapshotter) Snapshot(value any) (domain.ValueSnapshot, error) {
	return s.SnapshotWithPrevious(value, nil)
}

// SnapshotWithPrevious implements ports.ValueSnapshotter. Unchanged parts of the
// value keep the snapshot instances found in previous.
func (s *Snapshotter) SnapshotWithPrevious(value any, previous domain.ValueSnapshot) (domain.ValueSnapshot, error) {
	w := &walker{s: s, visiting: make(map[visit]struct{})}
	return w.snapshot(reflect.ValueOf(value), previous, 0)
}

// structFields returns the exported fields of t ordered by name.
func (s *Snapshotter) structFields(t reflect.Type) []fieldInfo {
	if cached, ok := s.fields.Load(t); ok {
		return cached.([]fieldInfo)
	}

	var fields []fieldInfo
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() || f.Tag.Get("snapshot") == "-" {
			continue
		}
		fields = append(fields, fieldInfo{name: f.Name, index: i})
	}
	slices.SortFunc(fields, func(a, b fieldInfo) int { return cmp.Compare(a.name, b.name) })

	actual, _ := s.fields.LoadOrStore(t, fields)
	return actual.([]fieldInfo)
}

type walker struct {
	s        *Snapshotter
	visiting map[visit]struct{}
}

// visit identifies a reference being walked. The type disambiguates a struct
// from its first field, which share an address.
type visit struct {
	ptr uintptr
	typ reflect.Type
}

func unsupported(t reflect.Type, reason string) error {
	return zerr.With(zerr.With(domain.ErrSnapshotFailed, "type", t.String()), "reason", reason)
}

func typeName(t reflect.Type) string {
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

// reuse returns previous when it equals fresh.
func reuse(previous, fresh domain.ValueSnapshot) domain.ValueSnapshot {
	if previous != nil && previous.Equal(fresh) {
		return previous
	}
	return fresh
}

func (w *walker) snapshot(v reflect.Value, prev domain.ValueSnapshot, depth int) (domain.ValueSnapshot, error) {
	if !v.IsValid() {
		return reuse(prev, domain.Null), nil
	}
	if depth > maxDepth {
		return nil, unsupported(v.Type(), "value is nested too deeply")
	}

	if (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) && v.IsNil() {
		return reuse(prev, domain.Null), nil
	}

	if custom, ok, err := w.custom(v, prev, depth); ok || err != nil {
		return custom, err
	}

	switch v.Kind() {
	case reflect.Bool:
		return reuse(prev, &domain.BoolSnapshot{Value: v.Bool()}), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return reuse(prev, &domain.IntSnapshot{Value: v.Int()}), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return reuse(prev, &domain.UintSnapshot{Value: v.Uint()}), nil
	case reflect.Float32, reflect.Float64:
		return reuse(prev, &domain.FloatSnapshot{Value: v.Float()}), nil
	case reflect.String:
		return reuse(prev, &domain.StringSnapshot{Value: v.String()}), nil
	case reflect.Slice, reflect.Array:
		return w.list(v, prev, depth)
	case reflect.Map:
		return w.mapping(v, prev, depth)
	case reflect.Struct:
		return w.structure(v, prev, depth)
	case reflect.Pointer:
		return w.pointer(v, prev, depth)
	case reflect.Interface:
		return w.snapshot(v.Elem(), prev, depth+1)
	default:
		// Complex numbers, functions, channels and unsafe pointers have no
		// reproducible representation.
		return nil, unsupported(v.Type(), "kind "+v.Kind().String()+" cannot be snapshotted")
	}
}

func describesItself(t reflect.Type) bool {
	return t.Implements(snapshotMarshalerType) || t.Implements(textMarshalerType)
}

// custom snapshots values that describe themselves.
func (w *walker) custom(v reflect.Value, prev domain.ValueSnapshot, depth int) (domain.ValueSnapshot, bool, error) {
	t := v.Type()
	if !v.CanInterface() || v.Kind() == reflect.Interface || !describesItself(t) {
		return nil, false, nil
	}
	if v.Kind() == reflect.Pointer && describesItself(t.Elem()) {
		// Snapshot through the pointer so that T and *T agree.
		return nil, false, nil
	}

	var prevInner domain.ValueSnapshot
	if c, ok := prev.(*domain.CustomSnapshot); ok && c.Type == typeName(t) {
		prevInner = c.Value
	}

	var inner domain.ValueSnapshot
	switch m := v.Interface().(type) {
	case domain.SnapshotMarshaler:
		value, err := m.SnapshotValue()
		if err != nil {
			return nil, true, zerr.With(zerr.Wrap(err, domain.ErrSnapshotFailed.Error()), "type", t.String())
		}
		if inner, err = w.snapshot(reflect.ValueOf(value), prevInner, depth+1); err != nil {
			return nil, true, err
		}
	case encoding.TextMarshaler:
		text, err := m.MarshalText()
		if err != nil {
			return nil, true, zerr.With(zerr.Wrap(err, domain.ErrSnapshotFailed.Error()), "type", t.String())
		}
		inner = reuse(prevInner, &domain.StringSnapshot{Value: string(text)})
	}

	return reuse(prev, &domain.CustomSnapshot{Type: typeName(t), Value: inner}), true, nil
}

func (w *walker) list(v reflect.Value, prev domain.ValueSnapshot, depth int) (domain.ValueSnapshot, error) {
	if v.Type().Elem().Kind() == reflect.Uint8 {
		b := make([]byte, v.Len())
		for i := range b {
			b[i] = byte(v.Index(i).Uint())
		}
		return reuse(prev, &domain.BytesSnapshot{Value: b}), nil
	}

	var prevElems []domain.ValueSnapshot
	if l, ok := prev.(*domain.ListSnapshot); ok {
		prevElems = l.Elements
	}

	elems := make([]domain.ValueSnapshot, v.Len())
	for i := range v.Len() {
		var p domain.ValueSnapshot
		if i < len(prevElems) {
			p = prevElems[i]
		}
		elem, err := w.snapshot(v.Index(i), p, depth+1)
		if err != nil {
			return nil, err
		}
		elems[i] = elem
	}
	return reuse(prev, &domain.ListSnapshot{Elements: elems}), nil
}

func (w *walker) mapping(v reflect.Value, prev domain.ValueSnapshot, depth int) (domain.ValueSnapshot, error) {
	done, err := w.enter(v)
	if err != nil {
		return nil, err
	}
	defer done()

	prevValues := make(map[string]domain.ValueSnapshot)
	if m, ok := prev.(*domain.MapSnapshot); ok {
		for _, e := range m.Entries {
			prevValues[string(domain.EncodeValueSnapshot(e.Key))] = e.Value
		}
	}

	entries := make([]domain.MapEntry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		key, err := w.snapshot(iter.Key(), nil, depth+1)
		if err != nil {
			return nil, err
		}
		value, err := w.snapshot(iter.Value(), prevValues[string(domain.EncodeValueSnapshot(key))], depth+1)
		if err != nil {
			return nil, err
		}
		entries = append(entries, domain.MapEntry{Key: key, Value: value})
	}
	return reuse(prev, domain.NewMapSnapshot(entries)), nil
}

func (w *walker) structure(v reflect.Value, prev domain.ValueSnapshot, depth int) (domain.ValueSnapshot, error) {
	t := v.Type()
	name := typeName(t)

	prevFields := make(map[string]domain.ValueSnapshot)
	if st, ok := prev.(*domain.StructSnapshot); ok && st.Type == name {
		for _, f := range st.Fields {
			prevFields[f.Name] = f.Value
		}
	}

	infos := w.s.structFields(t)
	fields := make([]domain.FieldSnapshot, 0, len(infos))
	for _, info := range infos {
		value, err := w.snapshot(v.Field(info.index), prevFields[info.name], depth+1)
		if err != nil {
			return nil, zerr.With(err, "field", t.String()+"."+info.name)
		}
		fields = append(fields, domain.FieldSnapshot{Name: info.name, Value: value})
	}
	return reuse(prev, &domain.StructSnapshot{Type: name, Fields: fields}), nil
}

func (w *walker) pointer(v reflect.Value, prev domain.ValueSnapshot, depth int) (domain.ValueSnapshot, error) {
	done, err := w.enter(v)
	if err != nil {
		return nil, err
	}
	defer done()
	return w.snapshot(v.Elem(), prev, depth+1)
}

// enter marks v as being visited and fails on cyclic references.
func (w *walker) enter(v reflect.Value) (func(), error) {
	key := visit{ptr: v.Pointer(), typ: v.Type()}
	if _, ok := w.visiting[key]; ok {
		return nil, unsupported(v.Type(), "value contains a reference cycle")
	}
	w.visiting[key] = struct{}{}
	return func() { delete(w.visiting, key) }, nil
}
