package dto

import "testing"

func TestNormalize(t *testing.T) {
	q := ListQuery{Page: -1, Limit: 500, Order: "sideways"}.Normalize()

	if q.Page != 1 || q.Limit != MaxLimit || q.Order != OrderDesc {
		t.Errorf("unexpected normalized query %+v", q)
	}
	if q.Offset() != 0 {
		t.Errorf("expected offset 0, got %d", q.Offset())
	}
}

func TestNewPageTotals(t *testing.T) {
	q := ListQuery{Page: 2, Limit: 7}.Normalize()

	p := NewPage([]int{1, 2}, 15, q)
	if p.TotalPages != 3 || p.Page != 2 {
		t.Errorf("unexpected page %+v", p)
	}

	empty := NewPage([]int{}, 0, q)
	if empty.TotalPages != 1 {
		t.Errorf("empty result should still report one page, got %d", empty.TotalPages)
	}
}

func TestParseOrder(t *testing.T) {
	if ParseOrder("ASC") != OrderAsc || ParseOrder("asc") != OrderAsc {
		t.Error("ascending not parsed")
	}
	if ParseOrder("") != OrderDesc {
		t.Error("descending should be the default")
	}
}
