package core

import "reflect"

// Table is a container's dispatch table: slot i serves the i-th required
// method of its Kind.
type Table []Trampoline

// buildTable resolves every required method of kind on payload. Any failure
// discards the whole table.
func buildTable(kind *Kind, payload reflect.Type) (Table, error) {
	table := make(Table, len(kind.methods))

	for i, method := range kind.methods {
		fn, err := TrampolineFor(payload, method)
		if err != nil {
			return nil, err
		}

		table[i] = fn
	}

	return table, nil
}

// deriveTable picks narrow's slots out of a table built for wide. The caller
// has already checked narrow.ConvertibleFrom(wide).
func deriveTable(narrow, wide *Kind, wideTable Table) Table {
	if narrow == wide {
		return wideTable
	}

	table := make(Table, len(narrow.methods))

	for i, method := range narrow.methods {
		table[i] = wideTable[wide.index[method.Name]]
	}

	return table
}
