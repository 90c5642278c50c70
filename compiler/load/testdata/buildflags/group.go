//go:build preview

package buildflags

import "github.com/syssam/typedq"

// Group only joins the build under the preview tag.
type Group struct {
	typedq.Entity

	Name string
}
