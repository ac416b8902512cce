package normalize

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/poiesic/vectorpress/core"
)

// Candidate source paths per canonical field, evaluated in order; the
// first non-empty value wins. CMS dialects are added here, not in code.
var (
	titlePaths        = []string{"title", "headline", "name", "headlines.basic"}
	urlPaths          = []string{"url", "link", "canonical_url", "website_url"}
	externalIDPaths   = []string{"external_id", "id", "_id", "slug", "uuid"}
	publishDatePaths  = []string{"publish_date", "published_at", "datetime", "display_date", "created_at", "updated_at"}
	firstPublishPaths = []string{"first_publish_date"}
	websitePaths      = []string{"website", "site", "source", "canonical_website"}
	sectionPaths      = []string{"sections", "section", "taxonomy.sections"}
	categoryPaths     = []string{"categories", "category", "taxonomy.categories"}
	tagPaths          = []string{"tags", "keywords", "labels", "taxonomy.tags"}
	thumbPaths        = []string{
		"thumb", "thumbnail", "image", "featured_image",
		"promo_items.basic.url", "promo_items.lead_art.url", "promo_items.square1x1.url",
	}
)

// timestampLayouts are tried in order when parsing a timestamp candidate.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123,
	time.RFC1123Z,
}

const isoUTC = "2006-01-02T15:04:05Z"

// Mapper resolves canonical metadata from arbitrarily named CMS fields.
// It never fails: every output field is populated, and missing or
// unparseable timestamps are defaulted to the current time with a warning.
type Mapper struct {
	now    func() time.Time
	logger *slog.Logger
}

// MapperOption configures a Mapper.
type MapperOption func(*Mapper)

// WithClock overrides the time source used for defaulted timestamps.
func WithClock(now func() time.Time) MapperOption {
	return func(m *Mapper) {
		if now != nil {
			m.now = now
		}
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) MapperOption {
	return func(m *Mapper) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewMapper creates a metadata mapper.
func NewMapper(opts ...MapperOption) *Mapper {
	m := &Mapper{
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With("component", "mapper")
	return m
}

// Map resolves the canonical metadata for one record. The record's
// original position in the batch is used to synthesize an external ID
// when no identifier field is present. Returned warnings describe
// recovered field problems; they never abort the record.
func (m *Mapper) Map(record core.Record, index int) (core.Metadata, []string) {
	var warnings []string

	externalID := firstScalar(record, externalIDPaths)
	if externalID == "" {
		externalID = fmt.Sprintf("cms-%d", index)
	}

	title := firstScalar(record, titlePaths)
	if title == "" {
		title = "Untitled"
	}

	website := firstScalar(record, websitePaths)

	publishDate, warning := m.resolveTimestamp(record, publishDatePaths, externalID, "publish_date")
	if warning != "" {
		warnings = append(warnings, warning)
	}

	// first_publish_date resolves independently, then falls back to the
	// already-resolved publish date.
	firstPublish := publishDate
	if raw := firstScalar(record, firstPublishPaths); raw != "" {
		if parsed, ok := parseTimestamp(raw); ok {
			firstPublish = parsed
		} else {
			warnings = append(warnings, m.warn(externalID, "first_publish_date", raw))
		}
	}

	var sections []string
	for _, path := range sectionPaths {
		if sections = record.Strings(path); len(sections) > 0 {
			break
		}
	}
	// Category-named fields feed sections only when no section-named
	// field is present; categories always take their own family.
	if len(sections) == 0 {
		for _, path := range []string{"category", "categories"} {
			if sections = record.Strings(path); len(sections) > 0 {
				break
			}
		}
	}

	var categories []string
	for _, path := range categoryPaths {
		if categories = record.Strings(path); len(categories) > 0 {
			break
		}
	}

	var tags []string
	for _, path := range tagPaths {
		if tags = record.Strings(path); len(tags) > 0 {
			break
		}
	}
	// Strings may alias a slice held by the record; trim into a copy.
	trimmed := make([]string, len(tags))
	for i, tag := range tags {
		trimmed[i] = strings.TrimPrefix(tag, "@")
	}

	return core.Metadata{
		Title:            title,
		URL:              m.buildURL(record, website),
		ExternalID:       externalID,
		PublishDate:      publishDate,
		Datetime:         publishDate,
		FirstPublishDate: firstPublish,
		Website:          website,
		Sections:         dedupePreserve(sections),
		Categories:       dedupePreserve(categories),
		Tags:             dedupePreserve(trimmed),
		Thumb:            firstScalar(record, thumbPaths),
	}, warnings
}

// buildURL resolves the article URL, expanding site-relative candidates
// with the record's website. Records with no URL at all resolve to "#".
func (m *Mapper) buildURL(record core.Record, website string) string {
	candidate := firstScalar(record, urlPaths)
	if candidate == "" {
		return "#"
	}
	if strings.HasPrefix(candidate, "http") {
		return candidate
	}
	if website != "" {
		return fmt.Sprintf("https://www.%s.com%s", website, candidate)
	}
	return candidate
}

func (m *Mapper) resolveTimestamp(record core.Record, paths []string, externalID, field string) (string, string) {
	raw := firstScalar(record, paths)
	if raw != "" {
		if parsed, ok := parseTimestamp(raw); ok {
			return parsed, ""
		}
		return m.now().UTC().Format(isoUTC), m.warn(externalID, field, raw)
	}
	return m.now().UTC().Format(isoUTC), m.warn(externalID, field, "")
}

func (m *Mapper) warn(externalID, field, raw string) string {
	if raw == "" {
		m.logger.Warn("timestamp missing, defaulting to current time", "record", externalID, "field", field)
		return fmt.Sprintf("record %s: missing %s, defaulted to current time", externalID, field)
	}
	m.logger.Warn("timestamp unparseable, defaulting to current time", "record", externalID, "field", field, "value", raw)
	return fmt.Sprintf("record %s: invalid %s %q, defaulted to current time", externalID, field, raw)
}

func parseTimestamp(raw string) (string, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC().Format(isoUTC), true
		}
	}
	return "", false
}

// firstScalar returns the first non-empty scalar along the candidate
// paths. Numeric identifiers are rendered as strings.
func firstScalar(record core.Record, paths []string) string {
	for _, path := range paths {
		value, ok := record.Lookup(path)
		if !ok {
			continue
		}
		switch v := value.(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case int:
			return strconv.Itoa(v)
		}
	}
	return ""
}

// dedupePreserve drops duplicates and empty entries, keeping the first
// occurrence order.
func dedupePreserve(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	ordered := make([]string, 0, len(values))
	for _, value := range values {
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		ordered = append(ordered, value)
	}
	return ordered
}
