package normalize

import (
	"fmt"
	"testing"
	"time"

	"github.com/poiesic/vectorpress/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testClock = func() time.Time {
	return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}

func newTestMapper() *Mapper {
	return NewMapper(WithClock(testClock))
}

func TestMapEveryFieldPopulated(t *testing.T) {
	// The degenerate record: nothing resolvable at all.
	meta, warnings := newTestMapper().Map(core.Record{}, 0)

	assert.Equal(t, "Untitled", meta.Title)
	assert.Equal(t, "#", meta.URL)
	assert.Equal(t, "cms-0", meta.ExternalID)
	assert.Equal(t, "2024-06-01T12:00:00Z", meta.PublishDate)
	assert.Equal(t, meta.PublishDate, meta.Datetime)
	assert.Equal(t, meta.PublishDate, meta.FirstPublishDate)
	assert.Equal(t, "", meta.Website)
	assert.Equal(t, []string{}, meta.Sections)
	assert.Equal(t, []string{}, meta.Categories)
	assert.Equal(t, []string{}, meta.Tags)
	assert.Equal(t, "", meta.Thumb)
	assert.Len(t, warnings, 1, "missing timestamp should warn")
}

func TestMapFieldPriorityChains(t *testing.T) {
	meta, _ := newTestMapper().Map(core.Record{
		"headline": "From Headline",
		"name":     "From Name",
		"slug":     "some-slug",
		"uuid":     "1234-5678",
		"link":     "https://example.com/article",
		"site":     "examplesite",
	}, 4)

	assert.Equal(t, "From Headline", meta.Title)
	assert.Equal(t, "some-slug", meta.ExternalID)
	assert.Equal(t, "https://example.com/article", meta.URL)
	assert.Equal(t, "examplesite", meta.Website)
}

func TestMapSynthesizedExternalID(t *testing.T) {
	meta, _ := newTestMapper().Map(core.Record{"title": "No identifiers"}, 3)
	assert.Equal(t, "cms-3", meta.ExternalID)
}

func TestMapNumericID(t *testing.T) {
	// JSON numbers decode to float64
	meta, _ := newTestMapper().Map(core.Record{"id": float64(98123)}, 0)
	assert.Equal(t, "98123", meta.ExternalID)
}

func TestMapInvalidTimestampWarnsAndDefaults(t *testing.T) {
	meta, warnings := newTestMapper().Map(core.Record{
		"external_id":  "abc",
		"publish_date": "not-a-date",
	}, 0)

	assert.Equal(t, "2024-06-01T12:00:00Z", meta.PublishDate)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "abc")
	assert.Contains(t, warnings[0], "not-a-date")

	// The defaulted value must itself be parseable ISO-8601 UTC
	_, err := time.Parse(time.RFC3339, meta.PublishDate)
	assert.NoError(t, err)
}

func TestMapTimestampLayouts(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"2023-11-05T08:30:00Z", "2023-11-05T08:30:00Z"},
		{"2023-11-05T08:30:00.250Z", "2023-11-05T08:30:00Z"},
		{"2023-11-05T08:30:00+02:00", "2023-11-05T06:30:00Z"},
		{"2023-11-05 08:30:00", "2023-11-05T08:30:00Z"},
		{"2023-11-05", "2023-11-05T00:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			meta, warnings := newTestMapper().Map(core.Record{"publish_date": tt.in}, 0)
			assert.Empty(t, warnings)
			assert.Equal(t, tt.expected, meta.PublishDate)
		})
	}
}

func TestMapFirstPublishDate(t *testing.T) {
	meta, warnings := newTestMapper().Map(core.Record{
		"publish_date":       "2023-11-05T08:30:00Z",
		"first_publish_date": "2023-11-01T10:00:00Z",
	}, 0)
	assert.Empty(t, warnings)
	assert.Equal(t, "2023-11-01T10:00:00Z", meta.FirstPublishDate)

	// Falls back to the resolved publish date when absent
	meta, _ = newTestMapper().Map(core.Record{"publish_date": "2023-11-05T08:30:00Z"}, 0)
	assert.Equal(t, "2023-11-05T08:30:00Z", meta.FirstPublishDate)

	// Invalid own value warns and falls back
	meta, warnings = newTestMapper().Map(core.Record{
		"publish_date":       "2023-11-05T08:30:00Z",
		"first_publish_date": "last tuesday",
	}, 0)
	assert.Len(t, warnings, 1)
	assert.Equal(t, "2023-11-05T08:30:00Z", meta.FirstPublishDate)
}

func TestMapDatetimeEqualsPublishDate(t *testing.T) {
	meta, _ := newTestMapper().Map(core.Record{"published_at": "2023-11-05T08:30:00Z"}, 0)
	assert.Equal(t, meta.PublishDate, meta.Datetime)
}

func TestMapSectionsAndCategories(t *testing.T) {
	// Both families present: each output takes its own family.
	meta, _ := newTestMapper().Map(core.Record{
		"sections":   []any{"World", "World", "Politics"},
		"categories": []any{"Opinion"},
	}, 0)
	assert.Equal(t, []string{"World", "Politics"}, meta.Sections, "duplicates dropped, order kept")
	assert.Equal(t, []string{"Opinion"}, meta.Categories)

	// Only category fields present: they feed both outputs.
	meta, _ = newTestMapper().Map(core.Record{"category": "Opinion"}, 0)
	assert.Equal(t, []string{"Opinion"}, meta.Sections)
	assert.Equal(t, []string{"Opinion"}, meta.Categories)

	// Scalar section becomes a one-element sequence.
	meta, _ = newTestMapper().Map(core.Record{"section": "Sports"}, 0)
	assert.Equal(t, []string{"Sports"}, meta.Sections)
}

func TestMapTaxonomyObjects(t *testing.T) {
	meta, _ := newTestMapper().Map(core.Record{
		"taxonomy": map[string]any{
			"sections": []any{map[string]any{"name": "News"}},
			"tags":     []any{map[string]any{"text": "@breaking"}, map[string]any{"slug": "local"}},
		},
	}, 0)

	assert.Equal(t, []string{"News"}, meta.Sections)
	assert.Equal(t, []string{"breaking", "local"}, meta.Tags, "leading @ is stripped")
}

func TestMapDoesNotMutateRecordTags(t *testing.T) {
	tags := []string{"@breaking", "@local"}
	record := core.Record{"tags": tags}

	meta, _ := newTestMapper().Map(record, 0)

	assert.Equal(t, []string{"breaking", "local"}, meta.Tags)
	assert.Equal(t, []string{"@breaking", "@local"}, tags, "the record's own slice must stay untouched")
}

func TestMapRelativeURL(t *testing.T) {
	meta, _ := newTestMapper().Map(core.Record{
		"canonical_url":     "/2023/11/05/article",
		"canonical_website": "dailyherald",
	}, 0)
	assert.Equal(t, "https://www.dailyherald.com/2023/11/05/article", meta.URL)

	// Relative URL with no website stays as-is
	meta, _ = newTestMapper().Map(core.Record{"url": "/no-site/article"}, 0)
	assert.Equal(t, "/no-site/article", meta.URL)
}

func TestMapThumb(t *testing.T) {
	meta, _ := newTestMapper().Map(core.Record{"thumbnail": "https://cdn.example.com/t.jpg"}, 0)
	assert.Equal(t, "https://cdn.example.com/t.jpg", meta.Thumb)

	meta, _ = newTestMapper().Map(core.Record{
		"promo_items": map[string]any{
			"lead_art": map[string]any{"url": "https://cdn.example.com/lead.jpg"},
		},
	}, 0)
	assert.Equal(t, "https://cdn.example.com/lead.jpg", meta.Thumb)
}

func TestMapNeverReturnsNilSequences(t *testing.T) {
	for i, record := range []core.Record{
		{},
		{"tags": "solo"},
		{"sections": []any{map[string]any{"id": float64(1)}}},
		{"publish_date": "garbage", "category": float64(12)},
	} {
		t.Run(fmt.Sprintf("record_%d", i), func(t *testing.T) {
			meta, _ := newTestMapper().Map(record, i)
			assert.NotNil(t, meta.Sections)
			assert.NotNil(t, meta.Categories)
			assert.NotNil(t, meta.Tags)
		})
	}
}
