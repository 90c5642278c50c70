package gen_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/typedq/compiler/gen"
	"github.com/syssam/typedq/compiler/load"
)

type nullSink struct{}

func (nullSink) WriteFile(string, []byte) error { return nil }

func benchSchemas() []*load.Type {
	str := &load.TypeRef{Kind: load.RefIdent, Name: "string"}
	i64 := &load.TypeRef{Kind: load.RefIdent, Name: "int64"}
	user := &load.TypeRef{
		Kind:        load.RefIdent,
		Name:        "User",
		PkgPath:     "example.com/app/models",
		PkgName:     "models",
		Persistable: true,
	}
	base := &load.TypeRef{
		Kind:        load.RefIdent,
		Name:        "Base",
		PkgPath:     "example.com/app/models",
		PkgName:     "models",
		Persistable: true,
	}
	return []*load.Type{
		{
			Name:    "Base",
			PkgPath: "example.com/app/models",
			PkgName: "models",
			Members: []*load.Member{
				{Name: "ID", Type: i64},
				{Name: "CreatedAt", Type: &load.TypeRef{Kind: load.RefIdent, Name: "Time", PkgPath: "time", PkgName: "time"}},
			},
		},
		{
			Name:    "User",
			PkgPath: "example.com/app/models",
			PkgName: "models",
			Supers:  []*load.TypeRef{base},
			Members: []*load.Member{
				{Name: "Email", Type: str},
				{Name: "Age", Type: &load.TypeRef{Kind: load.RefIdent, Name: "int"}},
				{Name: "Nickname", Type: &load.TypeRef{Kind: load.RefPointer, Elem: str}},
				{Name: "Roles", Type: &load.TypeRef{Kind: load.RefSlice, Elem: str}},
				{Name: "Settings", Type: &load.TypeRef{Kind: load.RefMap, Key: str, Value: str}},
				{Name: "Manager", Type: &load.TypeRef{Kind: load.RefPointer, Elem: user}},
			},
		},
	}
}

func BenchmarkGenerate(b *testing.B) {
	graph, err := gen.NewGraph(gen.DefaultConfig(), benchSchemas()...)
	require.NoError(b, err)
	g := gen.NewGenerator(graph).
		WithSink(nullSink{}).
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		require.NoError(b, g.Generate(context.Background()))
	}
}

func BenchmarkNewGraph(b *testing.B) {
	schemas := benchSchemas()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := gen.NewGraph(gen.DefaultConfig(), schemas...)
		require.NoError(b, err)
	}
}
