package cycle

import (
	"github.com/syssam/typedq"
	"github.com/syssam/typedq/compiler/load/testdata/cycle/loopback"
)

// Kind is re-exported from a package that imports this one back,
// creating an import cycle.
type Kind = loopback.Kind

// Task is a schema whose member type lives behind the cycle.
type Task struct {
	typedq.Entity

	Name string
	Kind Kind
}
