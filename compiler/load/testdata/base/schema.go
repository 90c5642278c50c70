package base

import "github.com/syssam/typedq"

// Base holds the shared identity of every entity.
type Base struct {
	typedq.Entity

	ID int64
}

// Audited extends Base with modification tracking.
type Audited struct {
	Base

	UpdatedBy string
}

// Document is persistence-capable through the Audited chain.
type Document struct {
	Audited

	Title string
}
