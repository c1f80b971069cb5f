package semantics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnusedTracking(t *testing.T) {
	db := newTestDatabase(t)
	f := db.Factory()
	u := db.Unused()

	c := declareClass(db, "Box", db.ObjectType())
	c.SetTypeParams([]*Entity{f.CreateTypeParameterType(f.CreateQName(c.PrivateNs(), "T"))})

	private := f.CreateVariableSlot(f.CreateQName(c.PrivateNs(), "value"), false, c.TypeParams()[0])
	private.SetParent(c)
	hidden := f.CreateVariableSlot(f.CreateQName(c.PrivateNs(), "_cache"), false, db.AnyType())
	protected := f.CreateVariableSlot(f.CreateQName(c.ProtectedNs(), "count"), false, db.IntType())

	u.AddNominal(private)
	u.AddNominal(private)
	u.AddNominal(hidden)
	u.AddNominal(protected)
	assert.Equal(t, []*Entity{private}, u.All())

	u.MarkUsed(db.Invalidation())
	u.MarkUsed(protected)
	assert.True(t, u.IsUnused(private))

	substituted := f.CreateVariableSlotAfterSubstitution(private, c.TypeParams(), []*Entity{db.StringType()})
	assert.Same(t, db.StringType(), substituted.StaticType(db))

	u.MarkUsed(substituted)
	assert.False(t, u.IsUnused(private), "marking a substituted slot marks its origin")
	assert.Empty(t, u.All())
}
