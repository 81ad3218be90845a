package page

import (
	"fmt"
	"strings"
)

// ValidationError lists the problems that keep a page definition from being saved.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "page: invalid definition: " + strings.Join(e.Problems, "; ")
}

// Normalize fills in the defaults of a page definition: an empty template
// becomes default, an empty status becomes draft, and absent sections become
// an empty list.
func Normalize(p Page) Page {
	p.Slug = strings.TrimSpace(p.Slug)
	p.Title = strings.TrimSpace(p.Title)
	if p.Template == "" {
		p.Template = TemplateDefault
	}
	if p.Status == "" {
		p.Status = StatusDraft
	}
	if p.Sections == nil {
		p.Sections = []Section{}
	}
	return p
}

// Validate checks a normalized page definition before it is stored. Unknown
// section and widget types are allowed, since they render as nothing, and are
// returned as warnings.
func Validate(p Page) (warnings []string, err error) {
	var problems []string
	if p.Slug == "" {
		problems = append(problems, "slug is required")
	} else if Slugify(p.Slug) != p.Slug {
		problems = append(problems, fmt.Sprintf("slug %q must be lowercase letters, digits and dashes", p.Slug))
	}
	if !p.Template.Known() {
		warnings = append(warnings, fmt.Sprintf("template %q is unknown, the default layout will be used", p.Template))
	}
	if !p.Status.Known() {
		problems = append(problems, fmt.Sprintf("status %q must be draft, published or private", p.Status))
	}
	for i, s := range p.Sections {
		if !s.Type.Known() {
			warnings = append(warnings, fmt.Sprintf("section %d: type %q is unknown and will not render", i, s.Type))
		}
		if s.Column != "" && s.Column != ColumnLeft && s.Column != ColumnRight {
			problems = append(problems, fmt.Sprintf("section %d: column %q must be left or right", i, s.Column))
		}
		if s.Props.Limit < 0 || s.Props.MaxPosts < 0 {
			problems = append(problems, fmt.Sprintf("section %d: limits must not be negative", i))
		}
		for j, w := range s.Props.Widgets {
			if !w.Type.Known() {
				warnings = append(warnings, fmt.Sprintf("section %d widget %d: type %q is unknown and will not render", i, j, w.Type))
			}
		}
	}
	if len(problems) > 0 {
		return warnings, &ValidationError{Problems: problems}
	}
	return warnings, nil
}
