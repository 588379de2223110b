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
	"fmt"
	"strings"
)

// ValidatePassage validates a Passage according to domain rules.
//
// Validation rules:
//   - Text must not be empty after whitespace trimming
//   - SourceID must not be empty
//   - SourceKind must be valid (web or file)
//   - Ordinal must not be negative
//   - Page must not be negative (0 means no page locator)
//
// NOT validated (populated by processors):
//   - Vector (can be empty until the embedding step runs)
//   - Pub/Domain/DocType (populated by the metadata extractor)
func ValidatePassage(passage *Passage) error {
	if passage == nil {
		return fmt.Errorf("%w: passage is nil", ErrInvalidPassage)
	}

	if strings.TrimSpace(passage.Text) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPassage, ErrEmptyText)
	}

	if passage.SourceID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPassage, ErrEmptySourceID)
	}

	if err := ValidateSourceKind(passage.SourceKind); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPassage, err)
	}

	if passage.Ordinal < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidPassage, ErrNegativeOrdinal)
	}

	if passage.Page < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidPassage, ErrInvalidPage)
	}

	return nil
}

// ValidateSourceKind validates that a SourceKind has a valid value.
func ValidateSourceKind(kind SourceKind) error {
	if kind != SourceKindWeb && kind != SourceKindFile {
		return fmt.Errorf("%w: value %d", ErrInvalidSourceKind, kind)
	}
	return nil
}
