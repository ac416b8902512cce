package core

import "strings"

// nameKeys are the keys tried, in order, when a taxonomy entry is an
// object rather than a plain string.
var nameKeys = []string{"name", "text", "description", "slug"}

// Record is one raw CMS export item. Field names vary by source, so it is
// an untyped mapping with opportunistic, path-based accessors. Accessors
// never panic on unexpected shapes; a value that cannot be coerced is
// treated as absent.
type Record map[string]any

// Lookup resolves a dotted path ("promo_items.basic.url") against the
// record. It reports false when any step is missing or not a mapping.
func (r Record) Lookup(path string) (any, bool) {
	var current any = map[string]any(r)
	for _, key := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// String resolves a dotted path to a non-empty string.
// Non-string and blank values resolve to "".
func (r Record) String(path string) string {
	value, ok := r.Lookup(path)
	if !ok {
		return ""
	}
	s, ok := value.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}

// Strings resolves a dotted path to an ordered sequence of names.
// A scalar string becomes a one-element sequence. List entries may be
// plain strings or objects; object entries resolve their name from the
// first non-empty of "name", "text", "description", "slug". Entries with
// no resolvable name are skipped.
func (r Record) Strings(path string) []string {
	value, ok := r.Lookup(path)
	if !ok {
		return nil
	}
	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		return []string{v}
	case []any:
		names := make([]string, 0, len(v))
		for _, item := range v {
			if name := entryName(item); name != "" {
				names = append(names, name)
			}
		}
		return names
	case []string:
		return v
	default:
		return nil
	}
}

// List resolves a dotted path to a sequence of nested records.
// Non-mapping entries are skipped.
func (r Record) List(path string) []Record {
	value, ok := r.Lookup(path)
	if !ok {
		return nil
	}
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	records := make([]Record, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			records = append(records, Record(m))
		}
	}
	return records
}

func entryName(item any) string {
	switch v := item.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return ""
		}
		return v
	case map[string]any:
		for _, key := range nameKeys {
			if s, ok := v[key].(string); ok && strings.TrimSpace(s) != "" {
				return s
			}
		}
	}
	return ""
}

// AsDocument reports whether the record already conforms to the canonical
// {text, metadata, embedding} shape and, if so, rebuilds the Document.
// Reprocessing a canonical document is a pass-through, so the pipeline
// can safely be re-run over its own output.
func (r Record) AsDocument() (*Document, bool) {
	text, ok := r["text"].(string)
	if !ok {
		return nil, false
	}
	md, ok := r["metadata"].(map[string]any)
	if !ok {
		return nil, false
	}
	meta := Record(md)

	doc := &Document{
		Text: text,
		Metadata: Metadata{
			Title:            meta.String("title"),
			URL:              meta.String("url"),
			ExternalID:       meta.String("external_id"),
			PublishDate:      meta.String("publish_date"),
			Datetime:         meta.String("datetime"),
			FirstPublishDate: meta.String("first_publish_date"),
			Website:          meta.String("website"),
			Sections:         orEmpty(meta.Strings("sections")),
			Categories:       orEmpty(meta.Strings("categories")),
			Tags:             orEmpty(meta.Strings("tags")),
			Thumb:            meta.String("thumb"),
		},
		Embedding: floatSlice(r["embedding"]),
	}
	return doc, true
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func floatSlice(value any) []float32 {
	switch v := value.(type) {
	case []float32:
		return v
	case []any:
		out := make([]float32, 0, len(v))
		for _, item := range v {
			switch n := item.(type) {
			case float64:
				out = append(out, float32(n))
			case float32:
				out = append(out, n)
			case int:
				out = append(out, float32(n))
			}
		}
		return out
	default:
		return []float32{}
	}
}
