// Package layout arranges the sections of a hydrated page into regions
// according to the page template. It performs no I/O and never fails: unknown
// templates fall back to the default arrangement and sections of unknown type
// are left out.
package layout

import "github.com/eringen/pagecraft/page"

// RegionName identifies an area of the page.
type RegionName string

const (
	RegionHero  RegionName = "hero"
	RegionMain  RegionName = "main"
	RegionSide  RegionName = "side"
	RegionFull  RegionName = "full"
	RegionLeft  RegionName = "left"
	RegionRight RegionName = "right"
)

// Width is the share of the row a region occupies.
type Width string

const (
	WidthFull      Width = "full"
	WidthTwoThirds Width = "two-thirds"
	WidthOneThird  Width = "one-third"
	WidthHalf      Width = "half"
)

// Block is one section placed in a region. Index is its position in the page's
// declared section list.
type Block struct {
	Index   int
	Section page.Section
}

// Region is an ordered group of blocks rendered side by side with its row siblings.
type Region struct {
	Name   RegionName
	Width  Width
	Blocks []Block
}

// Composition is the arranged page: regions in display order.
type Composition struct {
	Template page.Template
	Regions  []Region
}

// Region returns the blocks of the named region, or nil.
func (c Composition) Region(name RegionName) []Block {
	for _, r := range c.Regions {
		if r.Name == name {
			return r.Blocks
		}
	}
	return nil
}

// Rows groups the regions that share one horizontal row. The homepage hero row
// stands alone; its main and side regions share the next row.
func (c Composition) Rows() [][]Region {
	var rows [][]Region
	var current []Region
	for _, r := range c.Regions {
		if r.Width == WidthFull {
			if len(current) > 0 {
				rows = append(rows, current)
				current = nil
			}
			rows = append(rows, []Region{r})
			continue
		}
		current = append(current, r)
	}
	if len(current) > 0 {
		rows = append(rows, current)
	}
	return rows
}

type arrangeFunc func(sections []page.Section) []Region

var arrangers = map[page.Template]arrangeFunc{
	page.TemplateHomepage:  arrangeHomepage,
	page.TemplateFullWidth: arrangeFullWidth,
	page.TemplateTwoColumn: arrangeTwoColumn,
	page.TemplateDefault:   arrangeFullWidth,
}

// Arrange lays out sections for template t.
func Arrange(t page.Template, sections []page.Section) Composition {
	arrange, ok := arrangers[t]
	if !ok {
		t = page.TemplateDefault
		arrange = arrangers[t]
	}
	return Composition{Template: t, Regions: arrange(sections)}
}

// ArrangePage lays out a hydrated page.
func ArrangePage(p page.Page) Composition {
	return Arrange(p.Template, p.Sections)
}

// pick returns the known sections accepted by keep, in declared order.
func pick(sections []page.Section, keep func(page.Section) bool) []Block {
	blocks := []Block{}
	for i, s := range sections {
		if s.Type.Known() && keep(s) {
			blocks = append(blocks, Block{Index: i, Section: s})
		}
	}
	return blocks
}

func ofType(types ...page.SectionType) func(page.Section) bool {
	return func(s page.Section) bool {
		for _, t := range types {
			if s.Type == t {
				return true
			}
		}
		return false
	}
}

func all(page.Section) bool { return true }

func arrangeHomepage(sections []page.Section) []Region {
	return []Region{
		{Name: RegionHero, Width: WidthFull, Blocks: pick(sections, ofType(page.SectionHero))},
		{Name: RegionMain, Width: WidthTwoThirds, Blocks: pick(sections, ofType(
			page.SectionFeaturedPosts, page.SectionPostGrid, page.SectionPostList, page.SectionCategory,
		))},
		{Name: RegionSide, Width: WidthOneThird, Blocks: pick(sections, ofType(page.SectionSidebar))},
	}
}

func arrangeFullWidth(sections []page.Section) []Region {
	return []Region{
		{Name: RegionFull, Width: WidthFull, Blocks: pick(sections, all)},
	}
}

// arrangeTwoColumn sends sections without a right column to the left.
func arrangeTwoColumn(sections []page.Section) []Region {
	return []Region{
		{Name: RegionLeft, Width: WidthHalf, Blocks: pick(sections, func(s page.Section) bool {
			return s.Column != page.ColumnRight
		})},
		{Name: RegionRight, Width: WidthHalf, Blocks: pick(sections, func(s page.Section) bool {
			return s.Column == page.ColumnRight
		})},
	}
}
