package codec

import "errors"

var (
	// ErrInvalidData represents general invalid data.
	ErrInvalidData = errors.New("invalid data")
	// ErrOutOfRange represents logic accessing data in out of range.
	ErrOutOfRange = errors.New("out of range")
	// ErrNoTerminate represents invalid varint format.
	ErrNoTerminate = errors.New("no terminating bit found")
	// ErrUnexpectedFieldNumber represents field number not matching expected value.
	ErrUnexpectedFieldNumber = errors.New("unexpected field number found")
	// ErrFieldNumberNotFound represents expected field number not existing.
	ErrFieldNumberNotFound = errors.New("expected field number does not exist")
	// ErrUnreadBytes represents extra bytes not read.
	ErrUnreadBytes = errors.New("unread bytes exist")
	// ErrUnnecessaryLeadingBytes represents a varint not encoded in shortest form.
	ErrUnnecessaryLeadingBytes = errors.New("unnecessary leading bytes found")
)
