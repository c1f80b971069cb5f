package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mxmlextrema/mxmlcaot/semantics"
)

func TestResolvePath(t *testing.T) {
	db := semantics.NewDatabase(semantics.DefaultDatabaseOptions())
	semantics.DeclarePrelude(db)

	tests := []struct {
		path string
		want string
	}{
		{"Object", "PackageReferenceValue Object : Class"},
		{"Vector", "PackageReferenceValue Vector.<T> : Class"},
		{"flash.utils.Dictionary", "PackageReferenceValue flash.utils.Dictionary : Class"},
		{"Object.prototype", "StaticReferenceValue Object.prototype : *"},
	}

	for _, tt := range tests {
		r, err := resolvePath(db, tt.path)
		require.NoError(t, err, tt.path)
		require.NotNil(t, r, tt.path)
		assert.Equal(t, tt.want, describeValue(db, r), tt.path)
	}

	r, err := resolvePath(db, "Object.missing")
	require.NoError(t, err)
	assert.Nil(t, r)

	r, err = resolvePath(db, "flash.utils")
	require.NoError(t, err)
	assert.Nil(t, r, "packages are not values")
}
