// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"errors"
	"fmt"
)

// Domain validation errors
var (
	// ErrInputShape indicates the top-level input was not a sequence of records.
	ErrInputShape = errors.New("input must be an array of records")

	// ErrEmptyText indicates a document's text field is empty.
	ErrEmptyText = errors.New("document text cannot be empty")

	// ErrMissingMetadata indicates a required metadata field is empty.
	ErrMissingMetadata = errors.New("required metadata field is missing")

	// ErrInvalidTimestamp indicates a metadata timestamp is not ISO-8601 UTC.
	ErrInvalidTimestamp = errors.New("timestamp must be ISO-8601 UTC ending in Z")

	// ErrDimensionMismatch indicates an embedding's length differs from the
	// dimension declared by the run's provider.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)

// ProviderError marks an embedding backend failure. Provider failures are
// fatal for the whole run; there is no automatic retry.
type ProviderError struct {
	Provider string
	Model    string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("embedding provider %s (model %s): %v", e.Provider, e.Model, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// StoreError marks a vector-store failure. Documents assembled before the
// failure remain valid and are still returned to the caller.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("vector store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
