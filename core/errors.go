// Copyright 2025 Samir Salman
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

import "errors"

// Domain validation errors
var (
	// ErrInvalidNewsItem indicates a NewsItem failed validation.
	ErrInvalidNewsItem = errors.New("invalid news item")

	// ErrEmptyID indicates the stable identifier is missing.
	ErrEmptyID = errors.New("id cannot be empty")

	// ErrEmptyTitle indicates the Title field is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrInvalidSentiment indicates an unrecognized sentiment class.
	ErrInvalidSentiment = errors.New("invalid sentiment")

	// ErrUnknownCountry indicates a region code with no configured partition.
	ErrUnknownCountry = errors.New("unknown country")
)
