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

import "fmt"

// ValidateNewsItem checks that a news item carries the fields the pipeline
// depends on.
func ValidateNewsItem(item *NewsItem) error {
	if item == nil {
		return ErrInvalidNewsItem
	}
	if item.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidNewsItem, ErrEmptyID)
	}
	if item.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidNewsItem, ErrEmptyTitle)
	}
	return nil
}

// ValidateSentiment checks that a sentiment value is one of the known
// classes. The empty value is valid: it means not yet extracted.
func ValidateSentiment(s Sentiment) error {
	switch s {
	case "", SentimentPositive, SentimentNeutral, SentimentNegative:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidSentiment, s)
}
