package repository

import "fmt"

// StorageError wraps a fault in the backing store (filesystem or
// database). Handlers treat it as an internal failure and never expose
// the path or cause to clients.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// SchemaError reports table data that does not match the expected
// layout, such as an upload with missing or reordered columns. Unlike
// StorageError it is the caller's fault and safe to echo back.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return "invalid table: " + e.Reason
}
