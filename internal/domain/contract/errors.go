package contract

import "errors"

var (
	// ErrEmptyContent is returned when the generator has no words to name a contract with
	ErrEmptyContent = errors.New("contract generator needs clients, tasks and briefs")
)
