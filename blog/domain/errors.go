package domain

import "fmt"

// ValidationError reports bad caller input, such as a missing title.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports that no file corresponds to the given id or slug.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("post %q not found", e.Key)
}

// AlreadyExistsError reports an identity collision on create. Given id
// uniqueness this should never happen, but it is checked rather than assumed.
type AlreadyExistsError struct {
	Filename string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("post file %q already exists", e.Filename)
}

// AlreadyPublishedError reports a publish call on a post that has already
// made the draft to published transition.
type AlreadyPublishedError struct {
	ID string
}

func (e *AlreadyPublishedError) Error() string {
	return fmt.Sprintf("post %q is already published", e.ID)
}

// MalformedPostFileError reports a file whose metadata block is present but
// cannot be parsed. During listing such files are skipped and logged; when a
// caller asks for that one file the error is surfaced directly.
type MalformedPostFileError struct {
	Path string
	Err  error
}

func (e *MalformedPostFileError) Error() string {
	return fmt.Sprintf("malformed post file %s: %v", e.Path, e.Err)
}

func (e *MalformedPostFileError) Unwrap() error { return e.Err }

// StorageError reports an unexpected I/O failure. It is never swallowed; it
// propagates to the caller for logging and a generic failure response.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
