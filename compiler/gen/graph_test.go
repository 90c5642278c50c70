package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/typedq/compiler/load"
)

func persistable(pkgPath, pkgName, name string) *load.TypeRef {
	ref := named(pkgPath, pkgName, name)
	ref.Persistable = true
	return ref
}

func TestNewGraph(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		_, err := NewGraph(nil)
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})

	t.Run("registers nodes and classifies members", func(t *testing.T) {
		g, err := NewGraph(DefaultConfig(), &load.Type{
			Name:    "User",
			PkgPath: "example.com/app/models",
			PkgName: "models",
			Members: []*load.Member{
				{Name: "Age", Type: ident("int")},
				{Name: "Manager", Type: &load.TypeRef{
					Kind: load.RefPointer,
					Elem: persistable("example.com/app/models", "models", "User"),
				}},
			},
		})
		require.NoError(t, err)
		require.Len(t, g.Nodes, 1)

		user := g.Nodes[0]
		require.Len(t, user.Members, 2)
		assert.Equal(t, KindNumeric, user.Members[0].Category.Kind)

		manager := user.Members[1].Category
		require.Equal(t, KindReference, manager.Kind)
		require.NotNil(t, manager.Target)
		assert.Equal(t, "QUser", manager.Target.Name)
		assert.Equal(t, "example.com/app/models", manager.Target.PkgPath)

		got, ok := g.Lookup("example.com/app/models", "User")
		require.True(t, ok)
		assert.Same(t, user, got)

		_, ok = g.Lookup("example.com/app/models", "Ghost")
		assert.False(t, ok)
	})

	t.Run("rejects a type declared twice", func(t *testing.T) {
		schema := &load.Type{Name: "User", PkgPath: "example.com/app/models", PkgName: "models"}
		_, err := NewGraph(DefaultConfig(), schema, schema)
		require.Error(t, err)
		assert.True(t, IsValidationError(err))
		assert.Contains(t, err.Error(), "declared twice")
	})
}

func TestGraphSupertypes(t *testing.T) {
	t.Run("local supertype resolves to its registered companion", func(t *testing.T) {
		base := &load.Type{
			Name:    "Base",
			PkgPath: "example.com/app/models",
			PkgName: "models",
			Members: []*load.Member{{Name: "ID", Type: ident("int64")}},
		}
		order := &load.Type{
			Name:    "Order",
			PkgPath: "example.com/app/models",
			PkgName: "models",
			Supers:  []*load.TypeRef{persistable("example.com/app/models", "models", "Base")},
			Members: []*load.Member{{Name: "Number", Type: ident("string")}},
		}

		g, err := NewGraph(DefaultConfig(), base, order)
		require.NoError(t, err)

		require.False(t, g.Nodes[0].HasSuper())
		ot := g.Nodes[1]
		require.True(t, ot.HasSuper())
		assert.Equal(t, "QBase", ot.Super.Name)
		assert.Equal(t, "example.com/app/models", ot.Super.PkgPath)
	})

	t.Run("foreign supertype gets the conventional companion name", func(t *testing.T) {
		g, err := NewGraph(DefaultConfig(), &load.Type{
			Name:    "Invoice",
			PkgPath: "example.com/app/models",
			PkgName: "models",
			Supers:  []*load.TypeRef{persistable("example.com/app/billing", "billing", "Document")},
		})
		require.NoError(t, err)

		it := g.Nodes[0]
		require.True(t, it.HasSuper())
		assert.Equal(t, "QDocument", it.Super.Name)
		assert.Equal(t, "example.com/app/billing", it.Super.PkgPath)
		assert.Equal(t, "billing", it.Super.PkgName)
	})

	t.Run("unresolved embed still counts as the supertype", func(t *testing.T) {
		g, err := NewGraph(DefaultConfig(), &load.Type{
			Name:    "Broken",
			PkgPath: "example.com/app/models",
			PkgName: "models",
			Supers:  []*load.TypeRef{{Kind: load.RefIdent, Name: "Missing", Unresolved: true}},
		})
		require.NoError(t, err)

		bt := g.Nodes[0]
		require.True(t, bt.HasSuper())
		assert.Equal(t, "QMissing", bt.Super.Name)
		assert.Empty(t, bt.Super.PkgPath)
	})

	t.Run("plain embedded struct is not a supertype", func(t *testing.T) {
		g, err := NewGraph(DefaultConfig(), &load.Type{
			Name:    "Tagged",
			PkgPath: "example.com/app/models",
			PkgName: "models",
			Supers:  []*load.TypeRef{named("example.com/app/models", "models", "labels")},
		})
		require.NoError(t, err)
		assert.False(t, g.Nodes[0].HasSuper())
	})
}

func TestGraphNestedResolution(t *testing.T) {
	g, err := NewGraph(DefaultConfig(), &load.Type{
		Name:    "Customer",
		PkgPath: "example.com/app/models",
		PkgName: "models",
		Members: []*load.Member{
			{Name: "Shipping", Type: persistable("example.com/app/models", "models", "address")},
			{Name: "Billing", Type: persistable("example.com/app/models", "models", "address")},
		},
		Nested: []*load.Type{{
			Name:    "address",
			PkgPath: "example.com/app/models",
			PkgName: "models",
			Members: []*load.Member{{Name: "Street", Type: ident("string")}},
		}},
	})
	require.NoError(t, err)

	ct := g.Nodes[0]
	require.Len(t, ct.Nested, 1)
	assert.Equal(t, "QCustomer_Address", ct.Nested[0].Companion)

	// Both members point at the single inlined companion.
	for _, m := range ct.Members {
		require.Equal(t, KindReference, m.Category.Kind)
		assert.Equal(t, "QCustomer_Address", m.Category.Target.Name)
	}

	// Nested members are classified along with their owner's.
	assert.Equal(t, KindString, ct.Nested[0].Members[0].Category.Kind)

	nt, ok := g.Lookup("example.com/app/models", "address")
	require.True(t, ok)
	assert.Same(t, ct.Nested[0], nt)
}
