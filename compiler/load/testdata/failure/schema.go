package failure

import "github.com/syssam/typedq"

// Ledger references a type that does not exist, so the package reports
// type errors during loading.
type Ledger struct {
	typedq.Entity

	Amount currency
}
