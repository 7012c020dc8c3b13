package grid

import "github.com/rebeliceyang/lazygrid/internal/models"

func pageCount(rows, size int) int {
	if size <= 0 || rows <= 0 {
		return 0
	}
	return rows / size
}

func clampPageIndex(index, count int) int {
	last := count - 1
	if last < 0 {
		last = 0
	}
	if index > last {
		index = last
	}
	if index < 0 {
		index = 0
	}
	return index
}

// ResizePage computes the pagination after a page-size change: the index
// moves so the first row of the old page stays visible, then is clamped to
// the new page count.
func ResizePage(prev models.PaginationState, size, rows int) models.PaginationState {
	if size < 1 {
		size = 1
	}
	top := prev.PageIndex * prev.PageSize
	if top < 0 {
		top = 0
	}
	return models.PaginationState{
		PageIndex: clampPageIndex(top/size, pageCount(rows, size)),
		PageSize:  size,
	}
}

// SetPageIndex moves to a page, clamped to the page count
func (t *Table[T]) SetPageIndex(index int) {
	t.SetPagination(models.Update(func(prev models.PaginationState) models.PaginationState {
		prev.PageIndex = clampPageIndex(index, pageCount(t.RowCount(), prev.PageSize))
		return prev
	}))
}

// SetPageSize changes the page size and clamps the index in the same request
func (t *Table[T]) SetPageSize(size int) {
	t.SetPagination(models.Update(func(prev models.PaginationState) models.PaginationState {
		return ResizePage(prev, size, t.RowCount())
	}))
}

// ResetPageIndex returns to the first page
func (t *Table[T]) ResetPageIndex() {
	t.SetPagination(models.Update(func(prev models.PaginationState) models.PaginationState {
		prev.PageIndex = 0
		return prev
	}))
}

// ClampPageIndex pulls an out-of-range index back after the row count
// changed. It is a no-op, without observer call, when the index is valid.
func (t *Table[T]) ClampPageIndex() {
	t.SetPagination(models.Update(func(prev models.PaginationState) models.PaginationState {
		prev.PageIndex = clampPageIndex(prev.PageIndex, pageCount(t.RowCount(), prev.PageSize))
		return prev
	}))
}

func (t *Table[T]) NextPage() {
	t.SetPageIndex(t.state.Pagination.PageIndex + 1)
}

func (t *Table[T]) PreviousPage() {
	t.SetPageIndex(t.state.Pagination.PageIndex - 1)
}

func (t *Table[T]) FirstPage() {
	t.SetPageIndex(0)
}

func (t *Table[T]) LastPage() {
	t.SetPageIndex(t.PageCount() - 1)
}

func (t *Table[T]) CanPreviousPage() bool {
	return t.state.Pagination.PageIndex > 0
}

func (t *Table[T]) CanNextPage() bool {
	return t.state.Pagination.PageIndex < t.PageCount()-1
}
