package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rebeliceyang/lazygrid/internal/ui/theme"
)

// DefaultPageSizes are offered when the host supplies none
var DefaultPageSizes = []int{10, 25, 50, 100}

// Pagination renders the page controls below the grid
type Pagination struct {
	PageSizes []int
	Theme     theme.Theme
}

// NewPagination creates the page controls
func NewPagination(sizes []int, th theme.Theme) *Pagination {
	if len(sizes) == 0 {
		sizes = DefaultPageSizes
	}
	return &Pagination{PageSizes: sizes, Theme: th}
}

// NextPageSize returns the candidate after current, wrapping around. A
// size that is not a candidate moves to the first one.
func (p *Pagination) NextPageSize(current int) int {
	for i, s := range p.PageSizes {
		if s == current {
			return p.PageSizes[(i+1)%len(p.PageSizes)]
		}
	}
	return p.PageSizes[0]
}

// View renders "‹ 2 / 9 ›  rows 10 of 93" with the size candidates
func (p *Pagination) View(index, count, size, rows int) string {
	muted := lipgloss.NewStyle().Foreground(p.Theme.Muted)
	active := lipgloss.NewStyle().Foreground(p.Theme.TableHeaderActive).Bold(true)

	pages := count
	if pages < 1 {
		pages = 1
	}

	prev, next := "‹", "›"
	if index <= 0 {
		prev = muted.Render(prev)
	}
	if index >= count-1 {
		next = muted.Render(next)
	}

	var sizes []string
	for _, s := range p.PageSizes {
		label := fmt.Sprintf("%d", s)
		if s == size {
			sizes = append(sizes, active.Render(label))
		} else {
			sizes = append(sizes, muted.Render(label))
		}
	}

	return fmt.Sprintf(" %s %d / %d %s  %s  %s",
		prev, index+1, pages, next,
		muted.Render(fmt.Sprintf("%d rows", rows)),
		muted.Render("per page: ")+strings.Join(sizes, " "),
	)
}
