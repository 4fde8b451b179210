package pagination

import "github.com/alexraskin/showcase/internal/models"

// Info describes which slice of a list a page covers.
type Info struct {
	Page  int
	Pages int
	Total int
	Start int
	End   int
}

// Page returns the items on the requested page. The page number is clamped to
// 1..Pages and there is always at least one page. A size <= 0 puts every item on
// a single page.
func Page[T any](items []T, page, size int) ([]T, Info) {
	total := len(items)
	if size <= 0 {
		size = max(total, 1)
	}

	pages := (total + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	page = min(max(page, 1), pages)

	start := min((page-1)*size, total)
	end := min(start+size, total)

	return items[start:end], Info{
		Page:  page,
		Pages: pages,
		Total: total,
		Start: start,
		End:   end,
	}
}

// Build turns page info into the links the pagination bar renders.
func Build(info Info, href func(page int) string) models.Pagination {
	p := models.Pagination{
		Previous: models.PageLink{
			Number:   info.Page - 1,
			Disabled: info.Page <= 1,
		},
		Next: models.PageLink{
			Number:   info.Page + 1,
			Disabled: info.Page >= info.Pages,
		},
		Pages: make([]models.PageLink, 0, info.Pages),
		Last:  info.End,
		Total: info.Total,
	}
	if info.End > info.Start {
		p.First = info.Start + 1
	}
	if !p.Previous.Disabled {
		p.Previous.Href = href(p.Previous.Number)
	}
	if !p.Next.Disabled {
		p.Next.Href = href(p.Next.Number)
	}

	for n := 1; n <= info.Pages; n++ {
		p.Pages = append(p.Pages, models.PageLink{
			Number:  n,
			Href:    href(n),
			Current: n == info.Page,
		})
	}
	return p
}
