package pagecraft

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/eringen/pagecraft/content"
	"github.com/eringen/pagecraft/page"
)

// pageFile is a YAML (or JSON) file holding either one page or a list under
// "pages". Keys follow the JSON names of page.Page.
type pageFile struct {
	Pages []page.Page `json:"pages"`
}

// ParsePages decodes page definitions from YAML or JSON.
func ParsePages(data []byte) ([]page.Page, error) {
	raw, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("pagecraft: parse pages: %w", err)
	}
	var f pageFile
	if err := strictUnmarshal(raw, &f); err == nil && len(f.Pages) > 0 {
		return f.Pages, nil
	}
	var p page.Page
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("pagecraft: decode page: %w", err)
	}
	return []page.Page{p}, nil
}

func strictUnmarshal(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// ImportResult reports the outcome for one imported page.
type ImportResult struct {
	Slug     string
	Warnings []string
	Err      error
}

// ImportPages normalizes, validates and saves each page. An invalid page is
// reported in its result and does not stop the others.
func ImportPages(ctx context.Context, s *Store, pages []page.Page) []ImportResult {
	results := make([]ImportResult, 0, len(pages))
	for _, p := range pages {
		p = page.Normalize(p)
		res := ImportResult{Slug: p.Slug}
		res.Warnings, res.Err = page.Validate(p)
		if res.Err == nil {
			_, res.Err = s.SavePage(ctx, p)
		}
		results = append(results, res)
	}
	return results
}

// ContentFile is a seed file for the SQLite content store.
type ContentFile struct {
	Categories []content.Category `json:"categories"`
	Posts      []content.Post     `json:"posts"`
}

// ParseContent decodes a content seed file from YAML or JSON.
func ParseContent(data []byte) (ContentFile, error) {
	raw, err := yaml.YAMLToJSON(data)
	if err != nil {
		return ContentFile{}, fmt.Errorf("pagecraft: parse content: %w", err)
	}
	var f ContentFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return ContentFile{}, fmt.Errorf("pagecraft: decode content: %w", err)
	}
	return f, nil
}

// SeedContent writes the categories, then the posts, of f into s.
func SeedContent(ctx context.Context, s *content.Store, f ContentFile) error {
	for _, c := range f.Categories {
		if err := s.SaveCategory(ctx, c); err != nil {
			return fmt.Errorf("pagecraft: seed category %q: %w", c.ID, err)
		}
	}
	for _, p := range f.Posts {
		if err := s.SavePost(ctx, p); err != nil {
			return fmt.Errorf("pagecraft: seed post %q: %w", p.ID, err)
		}
	}
	return nil
}
