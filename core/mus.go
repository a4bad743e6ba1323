package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the types persisted in the badger bindings.
// Written by hand against the same layout musgen would produce: fields in
// declaration order, times as UnixMicro.

var (
	stringSliceMUS  = ord.NewSliceSer[string](ord.String)
	float32SliceMUS = ord.NewSliceSer[float32](varint.Float32)
	stringMapMUS    = ord.NewMapSer[string, string](ord.String, ord.String)
	countMapMUS     = ord.NewMapSer[string, int](ord.String, varint.Int)

	subArticleSliceMUS = ord.NewSliceSer[SubArticle](subArticleMUS{})
	linkSliceMUS       = ord.NewSliceSer[Link](linkMUS{})
)

// TimeMUS serializes a time.Time as a validity flag plus UnixMicro, so the
// zero value survives a round trip.
var TimeMUS = timeMUS{}

type timeMUS struct{}

func (timeMUS) Marshal(v time.Time, bs []byte) (n int) {
	n = ord.Bool.Marshal(!v.IsZero(), bs)
	if !v.IsZero() {
		n += varint.Int64.Marshal(v.UnixMicro(), bs[n:])
	}
	return
}

func (timeMUS) Unmarshal(bs []byte) (v time.Time, n int, err error) {
	valid, n, err := ord.Bool.Unmarshal(bs)
	if err != nil || !valid {
		return
	}
	var (
		micro int64
		n1    int
	)
	micro, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v = time.UnixMicro(micro).UTC()
	return
}

func (timeMUS) Size(v time.Time) (size int) {
	size = ord.Bool.Size(!v.IsZero())
	if !v.IsZero() {
		size += varint.Int64.Size(v.UnixMicro())
	}
	return
}

func (timeMUS) Skip(bs []byte) (n int, err error) {
	valid, n, err := ord.Bool.Unmarshal(bs)
	if err != nil || !valid {
		return
	}
	n1, err := varint.Int64.Skip(bs[n:])
	n += n1
	return
}

type sourceMUS struct{}

func (sourceMUS) Marshal(v Source, bs []byte) (n int) {
	n = ord.String.Marshal(v.HRef, bs)
	n += ord.String.Marshal(v.Title, bs[n:])
	return
}

func (sourceMUS) Unmarshal(bs []byte) (v Source, n int, err error) {
	var n1 int
	v.HRef, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (sourceMUS) Size(v Source) (size int) {
	size = ord.String.Size(v.HRef)
	size += ord.String.Size(v.Title)
	return
}

func (sourceMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	n1, err := ord.String.Skip(bs[n:])
	n += n1
	return
}

type subArticleMUS struct{}

func (subArticleMUS) Marshal(v SubArticle, bs []byte) (n int) {
	n = ord.String.Marshal(v.URL, bs)
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Publisher, bs[n:])
	return
}

func (subArticleMUS) Unmarshal(bs []byte) (v SubArticle, n int, err error) {
	var n1 int
	v.URL, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Publisher, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (subArticleMUS) Size(v SubArticle) (size int) {
	size = ord.String.Size(v.URL)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Publisher)
	return
}

func (subArticleMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	n1, err := ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	return
}

type linkMUS struct{}

func (linkMUS) Marshal(v Link, bs []byte) (n int) {
	n = ord.String.Marshal(v.Rel, bs)
	n += ord.String.Marshal(v.Type, bs[n:])
	n += ord.String.Marshal(v.HRef, bs[n:])
	return
}

func (linkMUS) Unmarshal(bs []byte) (v Link, n int, err error) {
	var n1 int
	v.Rel, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Type, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.HRef, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (linkMUS) Size(v Link) (size int) {
	size = ord.String.Size(v.Rel)
	size += ord.String.Size(v.Type)
	size += ord.String.Size(v.HRef)
	return
}

func (linkMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	n1, err := ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	return
}

// NewsItemMUS serializes a NewsItem.
var NewsItemMUS = newsItemMUS{}

type newsItemMUS struct{}

func (newsItemMUS) Marshal(v NewsItem, bs []byte) (n int) {
	n = ord.String.Marshal(v.ID, bs)
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Link, bs[n:])
	n += ord.Bool.Marshal(v.GUIDIsLink, bs[n:])
	n += ord.String.Marshal(v.Published, bs[n:])
	n += TimeMUS.Marshal(v.PublishedAt, bs[n:])
	n += ord.String.Marshal(v.Summary, bs[n:])
	n += sourceMUS{}.Marshal(v.Source, bs[n:])
	n += subArticleSliceMUS.Marshal(v.SubArticles, bs[n:])
	n += linkSliceMUS.Marshal(v.Links, bs[n:])
	return
}

func (newsItemMUS) Unmarshal(bs []byte) (v NewsItem, n int, err error) {
	var n1 int
	v.ID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Link, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.GUIDIsLink, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Published, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.PublishedAt, n1, err = TimeMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Summary, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Source, n1, err = sourceMUS{}.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.SubArticles, n1, err = subArticleSliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Links, n1, err = linkSliceMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (newsItemMUS) Size(v NewsItem) (size int) {
	size = ord.String.Size(v.ID)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Link)
	size += ord.Bool.Size(v.GUIDIsLink)
	size += ord.String.Size(v.Published)
	size += TimeMUS.Size(v.PublishedAt)
	size += ord.String.Size(v.Summary)
	size += sourceMUS{}.Size(v.Source)
	size += subArticleSliceMUS.Size(v.SubArticles)
	size += linkSliceMUS.Size(v.Links)
	return
}

func (s newsItemMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

// EnrichedNewsMUS serializes an EnrichedNews record.
var EnrichedNewsMUS = enrichedNewsMUS{}

type enrichedNewsMUS struct{}

func (enrichedNewsMUS) Marshal(v EnrichedNews, bs []byte) (n int) {
	n = NewsItemMUS.Marshal(v.NewsItem, bs)
	n += stringSliceMUS.Marshal(v.Entities, bs[n:])
	n += ord.String.Marshal(string(v.Sentiment), bs[n:])
	n += varint.Float64.Marshal(v.SentimentScore, bs[n:])
	n += stringSliceMUS.Marshal(v.Categories, bs[n:])
	n += stringSliceMUS.Marshal(v.Keywords, bs[n:])
	n += float32SliceMUS.Marshal(v.Vector, bs[n:])
	n += stringMapMUS.Marshal(v.Metadata, bs[n:])
	n += TimeMUS.Marshal(v.InsertedAt, bs[n:])
	n += TimeMUS.Marshal(v.UpdatedAt, bs[n:])
	return
}

func (enrichedNewsMUS) Unmarshal(bs []byte) (v EnrichedNews, n int, err error) {
	var n1 int
	v.NewsItem, n, err = NewsItemMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Entities, n1, err = stringSliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var sentiment string
	sentiment, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Sentiment = Sentiment(sentiment)
	v.SentimentScore, n1, err = varint.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Categories, n1, err = stringSliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Keywords, n1, err = stringSliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Vector, n1, err = float32SliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Metadata, n1, err = stringMapMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = TimeMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = TimeMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (enrichedNewsMUS) Size(v EnrichedNews) (size int) {
	size = NewsItemMUS.Size(v.NewsItem)
	size += stringSliceMUS.Size(v.Entities)
	size += ord.String.Size(string(v.Sentiment))
	size += varint.Float64.Size(v.SentimentScore)
	size += stringSliceMUS.Size(v.Categories)
	size += stringSliceMUS.Size(v.Keywords)
	size += float32SliceMUS.Size(v.Vector)
	size += stringMapMUS.Size(v.Metadata)
	size += TimeMUS.Size(v.InsertedAt)
	size += TimeMUS.Size(v.UpdatedAt)
	return
}

func (s enrichedNewsMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

// RunDetailMUS serializes a RunDetail.
var RunDetailMUS = runDetailMUS{}

type runDetailMUS struct{}

func (runDetailMUS) Marshal(v RunDetail, bs []byte) (n int) {
	n = ord.String.Marshal(v.ID, bs)
	n += ord.String.Marshal(v.AgentID, bs[n:])
	n += TimeMUS.Marshal(v.StartTime, bs[n:])
	n += TimeMUS.Marshal(v.EndTime, bs[n:])
	n += varint.Int.Marshal(v.RetrievedDataSize, bs[n:])
	n += ord.String.Marshal(string(v.Status), bs[n:])
	n += ord.String.Marshal(v.Message, bs[n:])
	n += stringMapMUS.Marshal(v.Metadata, bs[n:])
	return
}

func (runDetailMUS) Unmarshal(bs []byte) (v RunDetail, n int, err error) {
	var n1 int
	v.ID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v.AgentID, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.StartTime, n1, err = TimeMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.EndTime, n1, err = TimeMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.RetrievedDataSize, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var status string
	status, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Status = RunStatus(status)
	v.Message, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Metadata, n1, err = stringMapMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (runDetailMUS) Size(v RunDetail) (size int) {
	size = ord.String.Size(v.ID)
	size += ord.String.Size(v.AgentID)
	size += TimeMUS.Size(v.StartTime)
	size += TimeMUS.Size(v.EndTime)
	size += varint.Int.Size(v.RetrievedDataSize)
	size += ord.String.Size(string(v.Status))
	size += ord.String.Size(v.Message)
	size += stringMapMUS.Size(v.Metadata)
	return
}

func (s runDetailMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

// KeywordsAggregationMUS serializes a KeywordsAggregation snapshot.
var KeywordsAggregationMUS = keywordsAggregationMUS{}

type keywordsAggregationMUS struct{}

func (keywordsAggregationMUS) Marshal(v KeywordsAggregation, bs []byte) (n int) {
	n = ord.String.Marshal(v.ID, bs)
	n += TimeMUS.Marshal(v.DateTime, bs[n:])
	n += countMapMUS.Marshal(v.Keywords, bs[n:])
	n += stringMapMUS.Marshal(v.Metadata, bs[n:])
	return
}

func (keywordsAggregationMUS) Unmarshal(bs []byte) (v KeywordsAggregation, n int, err error) {
	var n1 int
	v.ID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v.DateTime, n1, err = TimeMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Keywords, n1, err = countMapMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Metadata, n1, err = stringMapMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (keywordsAggregationMUS) Size(v KeywordsAggregation) (size int) {
	size = ord.String.Size(v.ID)
	size += TimeMUS.Size(v.DateTime)
	size += countMapMUS.Size(v.Keywords)
	size += stringMapMUS.Size(v.Metadata)
	return
}

func (s keywordsAggregationMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

// SentimentAggregationMUS serializes a SentimentAggregation snapshot.
var SentimentAggregationMUS = sentimentAggregationMUS{}

type sentimentAggregationMUS struct{}

func (sentimentAggregationMUS) Marshal(v SentimentAggregation, bs []byte) (n int) {
	n = ord.String.Marshal(v.ID, bs)
	n += TimeMUS.Marshal(v.DateTime, bs[n:])
	n += countMapMUS.Marshal(v.Sentiment, bs[n:])
	n += stringMapMUS.Marshal(v.Metadata, bs[n:])
	return
}

func (sentimentAggregationMUS) Unmarshal(bs []byte) (v SentimentAggregation, n int, err error) {
	var n1 int
	v.ID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v.DateTime, n1, err = TimeMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Sentiment, n1, err = countMapMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Metadata, n1, err = stringMapMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (sentimentAggregationMUS) Size(v SentimentAggregation) (size int) {
	size = ord.String.Size(v.ID)
	size += TimeMUS.Size(v.DateTime)
	size += countMapMUS.Size(v.Sentiment)
	size += stringMapMUS.Size(v.Metadata)
	return
}

func (s sentimentAggregationMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}
