// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package partition

import (
	"errors"
	"fmt"
)

var (
	// ErrContractViolation is returned when a caller breaks a precondition, for
	// example by passing a template without a Resources section.
	ErrContractViolation = errors.New("contract violation")

	// ErrMalformedResource is returned when an extracted resource lacks a field the
	// partitioner has to rewrite.
	ErrMalformedResource = errors.New("malformed resource")

	// ErrExtractionConsumed is returned when an Extraction is passed to Run twice.
	ErrExtractionConsumed = errors.New("extraction already consumed")
)

// ContractError describes which operation rejected its input and why.
type ContractError struct {
	Op     string
	Reason string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Op, ErrContractViolation, e.Reason)
}

func (e *ContractError) Unwrap() error {
	return ErrContractViolation
}

func contractErrorf(op string, format string, args ...any) error {
	return &ContractError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

// ResourceError identifies the resource that failed a structural edit.
type ResourceError struct {
	ID     string
	Type   string
	Reason string
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("%s %s (%s): %s", ErrMalformedResource, e.ID, e.Type, e.Reason)
}

func (e *ResourceError) Unwrap() error {
	return ErrMalformedResource
}
