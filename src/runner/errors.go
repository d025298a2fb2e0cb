package runner

import "errors"

var (
	// Config validation errors
	ErrClientRequired  = errors.New("run client is required")
	ErrToolboxRequired = errors.New("toolbox is required")
	ErrOwnerRequired   = errors.New("owner id is required")

	// Execution errors
	ErrRunTimeout = errors.New("run polling ceiling exceeded")
	ErrRunFailed  = errors.New("run failed")
)
