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


package enrich

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/samirsalman/notiziario/ai"
	"github.com/samirsalman/notiziario/core"
)

// Stage enriches one field group of a record using a model completion.
// Enrich mutates the record in place and must leave every other field
// untouched. Implementations must be thread-safe for concurrent use.
type Stage interface {
	// Name identifies the stage in logs and error messages.
	Name() string

	// Enrich fills the stage's fields on the record. A malformed model
	// response is retried up to the attempt budget; the returned error wraps
	// ErrMalformedResponse when the budget runs out.
	Enrich(ctx context.Context, record *core.EnrichedNews) error
}

// completionStage is the shared Stage implementation. Each concrete stage
// supplies a prompt builder and an apply function that parses the response
// into the record.
type completionStage struct {
	name      string
	completer ai.Completer
	logger    *slog.Logger

	prompt func(record *core.EnrichedNews) string
	apply  func(record *core.EnrichedNews, response string) error
}

func newCompletionStage(
	name string,
	completer ai.Completer,
	prompt func(*core.EnrichedNews) string,
	apply func(*core.EnrichedNews, string) error,
) *completionStage {
	return &completionStage{
		name:      name,
		completer: completer,
		logger:    slog.Default().With("component", "enrich-stage", "stage", name),
		prompt:    prompt,
		apply:     apply,
	}
}

func (s *completionStage) Name() string {
	return s.name
}

func (s *completionStage) Enrich(ctx context.Context, record *core.EnrichedNews) error {
	instruction := s.prompt(record)

	err := retry(ctx, maxAttempts, func(err error) bool {
		return errors.Is(err, ErrMalformedResponse)
	}, func(ctx context.Context) error {
		response, err := s.completer.Complete(ctx, instruction, record.Summary)
		if err != nil {
			return err
		}
		if err := s.apply(record, response); err != nil {
			s.logger.Warn("rejecting model response", "id", record.ID, "err", err)
			return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("stage failed", "id", record.ID, "err", err)
		return fmt.Errorf("stage %s: %w", s.name, err)
	}
	return nil
}

// normalizeSet deduplicates and sorts a list of labels, dropping empty
// entries. With lower set, labels are lowercased before deduplication.
func normalizeSet(values []string, lower bool) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if lower {
			v = strings.ToLower(v)
		}
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
