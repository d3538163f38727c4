package core

// Convert builds a container of Kind To from a container of a wider Kind
// From, duplicating src's payload. Every method of To must exist in From with
// an identical signature; the check runs even when src is empty. The new
// dispatch table is taken from src's, so the payload type never needs to be
// known here.
func Convert[To, From Definition](src *Container[From]) (*Container[To], error) {
	narrow, wide, err := conversionKinds[To, From]()
	if err != nil {
		return nil, err
	}

	if !src.Valid() {
		return &Container[To]{}, nil
	}

	storage, err := duplicate(src.desc, src.storage)
	if err != nil {
		return nil, err
	}

	return &Container[To]{
		storage: storage,
		desc:    src.desc,
		table:   deriveTable(narrow, wide, src.table),
	}, nil
}

// ConvertMove is Convert that relocates src's payload instead of duplicating
// it, leaving src empty. It works for move-only payloads.
func ConvertMove[To, From Definition](src *Container[From]) (*Container[To], error) {
	narrow, wide, err := conversionKinds[To, From]()
	if err != nil {
		return nil, err
	}

	if !src.Valid() {
		return &Container[To]{}, nil
	}

	storage := allocate(src.storage.Type())
	src.desc.Relocate(storage, src.storage)

	out := &Container[To]{
		storage: storage,
		desc:    src.desc,
		table:   deriveTable(narrow, wide, src.table),
	}

	// Relocation consumed the payload; there is nothing left to finalize.
	src.storage, src.desc, src.table = Storage{}, nil, nil

	return out, nil
}

func conversionKinds[To, From Definition]() (*Kind, *Kind, error) {
	narrow, err := KindOf[To]()
	if err != nil {
		return nil, nil, err
	}

	wide, err := KindOf[From]()
	if err != nil {
		return nil, nil, err
	}

	err = narrow.ConvertibleFrom(wide)
	if err != nil {
		return nil, nil, err
	}

	return narrow, wide, nil
}
