package semantics

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// internTable holds interned entities in buckets selected by a content hash of
// their defining handles.  Entities of a bucket are compared structurally, so
// hash collisions never merge distinct entities.
type internTable struct {
	buckets map[uint64][]*Entity
}

func newInternTable() internTable {
	return internTable{buckets: make(map[uint64][]*Entity)}
}

// find returns the entity of the bucket satisfying match or nil.
func (t internTable) find(key uint64, match func(e *Entity) bool) *Entity {
	for _, e := range t.buckets[key] {
		if match(e) {
			return e
		}
	}

	return nil
}

func (t internTable) insert(key uint64, e *Entity) {
	t.buckets[key] = append(t.buckets[key], e)
}

// len returns the number of interned entities.
func (t internTable) len() int {
	n := 0
	for _, bucket := range t.buckets {
		n += len(bucket)
	}

	return n
}

// -----------------------------------------------------------------------------

// internKey hashes a sequence of integers: arena handles, element counts and
// parameter kinds.
type internKey struct {
	d   *xxhash.Digest
	buf [8]byte
}

func newInternKey() *internKey {
	return &internKey{d: xxhash.New()}
}

func (k *internKey) num(v int) *internKey {
	binary.LittleEndian.PutUint64(k.buf[:], uint64(v))
	k.d.Write(k.buf[:])
	return k
}

func (k *internKey) entity(e *Entity) *internKey {
	if e == nil {
		return k.num(-1)
	}

	return k.num(e.id)
}

func (k *internKey) entities(list []*Entity) *internKey {
	k.num(len(list))
	for _, e := range list {
		k.entity(e)
	}

	return k
}

func (k *internKey) sum() uint64 {
	return k.d.Sum64()
}

func sameEntities(a, b []*Entity) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
