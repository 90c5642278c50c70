package loopback

import (
	// The import loops back to the parent package.
	_ "github.com/syssam/typedq/compiler/load/testdata/cycle"
)

// Kind is a task discriminator.
type Kind string
