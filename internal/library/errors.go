package library

import "errors"

var (
	// ErrNilRecord is returned when construction is requested without a record
	ErrNilRecord = errors.New("record is nil")

	// ErrNotSpawnable is returned when constructing a record marked not spawnable
	ErrNotSpawnable = errors.New("record is not spawnable")

	// ErrAbstract is returned when constructing an abstract record without a Constructor
	ErrAbstract = errors.New("record is abstract and has no constructor")

	// ErrConstructorFailed is returned when a custom Constructor produced nothing usable
	ErrConstructorFailed = errors.New("custom constructor failed")

	// ErrNonEditable is returned when writing a property without a setter
	ErrNonEditable = errors.New("property is not editable")

	// ErrTypeMismatch is returned when a target or value does not fit a member
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInvoke is returned when a function invocation fails or panics
	ErrInvoke = errors.New("invocation failed")
)

// ErrNotRegistered is returned when a type has no record
var ErrNotRegistered = errors.New("type is not registered")
