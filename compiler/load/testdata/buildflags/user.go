package buildflags

import "github.com/syssam/typedq"

// User is always part of the build.
type User struct {
	typedq.Entity

	Name string
}
