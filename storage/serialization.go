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


package storage

import (
	"github.com/samirsalman/notiziario/core"
)

// MarshalNews serializes an EnrichedNews record to bytes.
func MarshalNews(record *core.EnrichedNews) []byte {
	buf := make([]byte, core.EnrichedNewsMUS.Size(*record))
	core.EnrichedNewsMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalNews deserializes an EnrichedNews record from bytes.
func UnmarshalNews(data []byte) (*core.EnrichedNews, error) {
	record, _, err := core.EnrichedNewsMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MarshalRun serializes a RunDetail to bytes.
func MarshalRun(run *core.RunDetail) []byte {
	buf := make([]byte, core.RunDetailMUS.Size(*run))
	core.RunDetailMUS.Marshal(*run, buf)
	return buf
}

// UnmarshalRun deserializes a RunDetail from bytes.
func UnmarshalRun(data []byte) (*core.RunDetail, error) {
	run, _, err := core.RunDetailMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// MarshalKeywordsAggregation serializes a KeywordsAggregation to bytes.
func MarshalKeywordsAggregation(agg *core.KeywordsAggregation) []byte {
	buf := make([]byte, core.KeywordsAggregationMUS.Size(*agg))
	core.KeywordsAggregationMUS.Marshal(*agg, buf)
	return buf
}

// UnmarshalKeywordsAggregation deserializes a KeywordsAggregation from bytes.
func UnmarshalKeywordsAggregation(data []byte) (*core.KeywordsAggregation, error) {
	agg, _, err := core.KeywordsAggregationMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &agg, nil
}

// MarshalSentimentAggregation serializes a SentimentAggregation to bytes.
func MarshalSentimentAggregation(agg *core.SentimentAggregation) []byte {
	buf := make([]byte, core.SentimentAggregationMUS.Size(*agg))
	core.SentimentAggregationMUS.Marshal(*agg, buf)
	return buf
}

// UnmarshalSentimentAggregation deserializes a SentimentAggregation from bytes.
func UnmarshalSentimentAggregation(data []byte) (*core.SentimentAggregation, error) {
	agg, _, err := core.SentimentAggregationMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &agg, nil
}
