package grid

import "github.com/rebeliceyang/lazygrid/internal/models"

// Observers are the host's controlled-state callbacks. Each receives the
// post-transform value of its axis before the value is written.
type Observers struct {
	OnSearch     func(next string)
	OnSort       func(next models.SortingState)
	OnFilter     func(next models.ColumnFiltersState)
	OnPageChange func(next models.PaginationState)
}

// axis describes how to read and write one slice of TableState. changed,
// when set, filters out no-op requests before the observer and the write.
type axis[V any] struct {
	get     func(s *models.TableState) V
	set     func(s *models.TableState, v V)
	changed func(prev, next V) bool
}

var (
	searchAxis = axis[string]{
		get: func(s *models.TableState) string { return s.GlobalFilter },
		set: func(s *models.TableState, v string) { s.GlobalFilter = v },
	}
	sortAxis = axis[models.SortingState]{
		get: func(s *models.TableState) models.SortingState { return s.Sorting.Clone() },
		set: func(s *models.TableState, v models.SortingState) { s.Sorting = v },
	}
	filterAxis = axis[models.ColumnFiltersState]{
		get: func(s *models.TableState) models.ColumnFiltersState { return s.ColumnFilters.Clone() },
		set: func(s *models.TableState, v models.ColumnFiltersState) { s.ColumnFilters = v },
	}
	pageAxis = axis[models.PaginationState]{
		get: func(s *models.TableState) models.PaginationState { return s.Pagination },
		set: func(s *models.TableState, v models.PaginationState) { s.Pagination = v },
		changed: func(prev, next models.PaginationState) bool {
			return prev.PageIndex != next.PageIndex || prev.PageSize != next.PageSize
		},
	}
	sizingAxis = axis[map[string]int]{
		get: func(s *models.TableState) map[string]int {
			out := make(map[string]int, len(s.ColumnSizing))
			for k, v := range s.ColumnSizing {
				out[k] = v
			}
			return out
		},
		set: func(s *models.TableState, v map[string]int) { s.ColumnSizing = v },
	}
)

// reconcile is the one reducer behind every axis: compute the next value,
// hand it to the observer, then write it. It reports whether a write happened.
func reconcile[V any](state *models.TableState, a axis[V], u models.Updater[V], observe func(V)) bool {
	prev := a.get(state)
	next := u.Apply(prev)
	if a.changed != nil && !a.changed(prev, next) {
		return false
	}
	if observe != nil {
		observe(next)
	}
	a.set(state, next)
	return true
}

// dispatch runs state-change requests one at a time. A request submitted
// while another is running (from an observer, or a follow-up such as the
// page reset) is queued and runs after the current one has fully completed.
func (t *Table[T]) dispatch(req func()) {
	t.queue = append(t.queue, req)
	if t.dispatching {
		return
	}
	t.dispatching = true
	defer func() { t.dispatching = false }()
	for len(t.queue) > 0 {
		next := t.queue[0]
		t.queue = t.queue[1:]
		next()
	}
}

// SetGlobalFilter submits a change to the search axis
func (t *Table[T]) SetGlobalFilter(u models.Updater[string]) {
	t.dispatch(func() {
		if reconcile(&t.state, searchAxis, u, t.options.Observers.OnSearch) {
			t.autoResetPageIndex()
		}
	})
}

// SetSorting submits a change to the sort axis
func (t *Table[T]) SetSorting(u models.Updater[models.SortingState]) {
	t.dispatch(func() {
		if reconcile(&t.state, sortAxis, u, t.options.Observers.OnSort) {
			t.autoResetPageIndex()
		}
	})
}

// SetColumnFilters submits a change to the filter axis. Entries whose
// column filter auto-removes the value, nil included, are dropped from the
// result before the observer sees it.
func (t *Table[T]) SetColumnFilters(u models.Updater[models.ColumnFiltersState]) {
	pruned := models.Update(func(prev models.ColumnFiltersState) models.ColumnFiltersState {
		return t.pruneFilters(u.Apply(prev))
	})
	t.dispatch(func() {
		if reconcile(&t.state, filterAxis, pruned, t.options.Observers.OnFilter) {
			t.autoResetPageIndex()
		}
	})
}

// SetPagination submits a change to the page axis. Requests that leave both
// index and size unchanged neither notify nor write.
func (t *Table[T]) SetPagination(u models.Updater[models.PaginationState]) {
	t.dispatch(func() {
		reconcile(&t.state, pageAxis, u, t.options.Observers.OnPageChange)
	})
}

// pruneFilters drops entries that must never be stored: nil values, and
// values the column's filter auto-removes
func (t *Table[T]) pruneFilters(set models.ColumnFiltersState) models.ColumnFiltersState {
	if set == nil {
		return nil
	}
	out := make(models.ColumnFiltersState, 0, len(set))
	for _, f := range set {
		if f.Value == nil {
			continue
		}
		if col := t.byID[f.ID]; col != nil && col.def.Filter.ShouldAutoRemove(f.Value) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func (t *Table[T]) setColumnSizing(u models.Updater[map[string]int]) {
	t.dispatch(func() {
		reconcile(&t.state, sizingAxis, u, nil)
	})
}

// autoResetPageIndex returns to the first page after the visible rows change.
// In manual mode the host owns paging and nothing is reset.
func (t *Table[T]) autoResetPageIndex() {
	if t.ManualPagination() {
		return
	}
	t.ResetPageIndex()
}
