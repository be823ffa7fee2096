package ere

import (
	"fmt"

	"github.com/calperum/textkit/core/errors"
)

// LoadError wraps any failure that aborts the load of a single
// document, naming the source file and/or document id known at the
// time of failure. There is no partial result: a load either returns a
// complete Document or a *LoadError.
type LoadError struct {
	DocID string // doc_id of the document, when the root was reached
	Path  string // source file path, when loading from a file
	Err   error  // underlying cause
}

func (e *LoadError) Error() string {
	src := e.Path
	if src == "" {
		src = e.DocID
	}
	if src == "" {
		return fmt.Sprintf("loading ERE document: %v", e.Err)
	}
	return fmt.Sprintf("loading ERE document %s: %v", src, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SchemaError reports input that violates the Rich ERE schema: an
// unrecognized element, or a missing or malformed required attribute.
type SchemaError struct {
	Element string // tag name of the offending element
	Attr    string // attribute name, when an attribute is at fault
	Message string
}

func (e *SchemaError) Error() string {
	switch {
	case e.Element != "" && e.Attr != "":
		return fmt.Sprintf("element <%s>: attribute %q: %s", e.Element, e.Attr, e.Message)
	case e.Element != "":
		return fmt.Sprintf("element <%s>: %s", e.Element, e.Message)
	default:
		return e.Message
	}
}

func (e *SchemaError) Unwrap() error { return errors.ErrInvalidInput }

// ReferenceError reports an identifier that failed to resolve during
// cross-reference resolution, an identifier registered under an
// unexpected kind, or an argument that names no reference at all.
type ReferenceError struct {
	ID      string // identifier that failed to resolve, when one was named
	Element string // tag name of the referencing element, when known
	Message string
}

func (e *ReferenceError) Error() string {
	switch {
	case e.ID != "" && e.Element != "":
		return fmt.Sprintf("element <%s>: id %q: %s", e.Element, e.ID, e.Message)
	case e.ID != "":
		return fmt.Sprintf("id %q: %s", e.ID, e.Message)
	case e.Element != "":
		return fmt.Sprintf("element <%s>: %s", e.Element, e.Message)
	default:
		return e.Message
	}
}

func (e *ReferenceError) Unwrap() error {
	if e.ID != "" {
		return errors.ErrNotFound
	}
	return errors.ErrInvalidInput
}
