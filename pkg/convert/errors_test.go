package convert

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			"not found",
			errors.Wrap(ErrSourceNotFound, "/in/logo.png"),
			"error: /in/logo.png: source image not found",
		},
		{
			"invalid config",
			errors.Wrap(ErrInvalidConfig, "DPI must be one of 203 300"),
			"error: DPI must be one of 203 300: invalid config",
		},
		{
			"processing",
			processErr("load", errors.New("unsupported image")),
			"error: conversion failed: load failed: unsupported image",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Message(tt.err))
		})
	}
}
