// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the payloads and configuration shared across the
// pdfraster CLI and its internal packages.
package types

// ConversionRequest identifies a source PDF and the directory that receives
// one JPEG per page. Built from the command arguments; immutable afterwards.
type ConversionRequest struct {
	SourcePath string
	OutputDir  string
}

// ConversionResult is the success object printed to stdout: the output file
// paths in ascending page order.
type ConversionResult struct {
	Success bool     `json:"success"`
	Pages   []string `json:"pages"`
}

// ConversionError is the failure object printed to stdout. Every failure kind
// (usage, missing file, open, per-page) flattens into this one shape.
type ConversionError struct {
	Message string `json:"error"`
}
