package convert

import (
	"fmt"

	"github.com/pkg/errors"

	"zplogo/pkg/source"
)

var (
	// ErrSourceNotFound means the source path or URL does not resolve to a file.
	ErrSourceNotFound = source.ErrNotFound
	// ErrProcessing covers every other failure: decoding, encoding or writing.
	ErrProcessing    = errors.New("processing failed")
	ErrInvalidConfig = errors.New("invalid config")
)

// ProcessError records the stage at which a conversion failed.
type ProcessError struct {
	Stage string
	Err   error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

func (e *ProcessError) Is(target error) bool {
	return target == ErrProcessing
}

func processErr(stage string, err error) error {
	return &ProcessError{Stage: stage, Err: err}
}

// Message renders err as the one-line explanation shown to the user.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrSourceNotFound), errors.Is(err, ErrInvalidConfig):
		return fmt.Sprintf("error: %s", err)
	default:
		return fmt.Sprintf("error: conversion failed: %s", err)
	}
}
