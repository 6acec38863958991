package query

import (
	"testing"
	"time"
)

type row struct {
	Name string
	Age  *int
	When time.Time
}

func intp(v int) *int { return &v }

func rowSchema() Schema[row] {
	return Schema[row]{
		Searchable: []func(row) string{
			func(r row) string { return r.Name },
		},
		Sortable: map[string]func(row) (any, bool){
			"name": func(r row) (any, bool) { return r.Name, true },
			"age": func(r row) (any, bool) {
				if r.Age == nil {
					return nil, false
				}
				return *r.Age, true
			},
			"when": func(r row) (any, bool) { return r.When, true },
		},
	}
}

func TestApplySearchCaseInsensitive(t *testing.T) {
	items := []row{{Name: "Lease Agreement"}, {Name: "NDA"}, {Name: "Sublease"}}

	res := Apply(items, Params{Search: "lease"}, rowSchema())

	if res.Total != 2 {
		t.Fatalf("Expected 2 matches, got %d", res.Total)
	}
	if res.Items[0].Name != "Lease Agreement" || res.Items[1].Name != "Sublease" {
		t.Errorf("Unexpected matches: %v", res.Items)
	}
}

func TestApplySortAscDesc(t *testing.T) {
	items := []row{{Name: "b"}, {Name: "C"}, {Name: "a"}}

	res := Apply(items, Params{SortField: "name", SortDir: Asc}, rowSchema())
	if res.Items[0].Name != "a" || res.Items[2].Name != "C" {
		t.Errorf("Unexpected ascending order: %v", res.Items)
	}

	res = Apply(items, Params{SortField: "name", SortDir: Desc}, rowSchema())
	if res.Items[0].Name != "C" || res.Items[2].Name != "a" {
		t.Errorf("Unexpected descending order: %v", res.Items)
	}
}

func TestApplyNullsLastBothDirections(t *testing.T) {
	items := []row{
		{Name: "no-age"},
		{Name: "old", Age: intp(70)},
		{Name: "young", Age: intp(20)},
	}

	for _, dir := range []Direction{Asc, Desc} {
		res := Apply(items, Params{SortField: "age", SortDir: dir}, rowSchema())
		last := res.Items[len(res.Items)-1]
		if last.Age != nil {
			t.Errorf("Direction %s: expected null age last, got %v", dir, last)
		}
	}
}

func TestApplyPagination(t *testing.T) {
	var items []row
	for i := 0; i < 25; i++ {
		items = append(items, row{Name: "item"})
	}

	res := Apply(items, Params{Page: 2, PageSize: 10}, rowSchema())
	if len(res.Items) != 10 || res.Total != 25 || res.Page != 2 {
		t.Errorf("Expected page 2 of 10/25, got %d items, total %d, page %d",
			len(res.Items), res.Total, res.Page)
	}

	res = Apply(items, Params{Page: 3, PageSize: 10}, rowSchema())
	if len(res.Items) != 5 {
		t.Errorf("Expected 5 items on last page, got %d", len(res.Items))
	}
}

func TestApplyClampsOutOfRangePage(t *testing.T) {
	items := []row{{Name: "only"}}

	res := Apply(items, Params{Page: 99, PageSize: 10}, rowSchema())
	if res.Page != 1 || len(res.Items) != 1 {
		t.Errorf("Expected clamp to page 1, got page %d with %d items", res.Page, len(res.Items))
	}

	res = Apply(nil, Params{Page: 5}, rowSchema())
	if res.Page != 1 || res.Total != 0 {
		t.Errorf("Expected page 1 of empty result, got page %d", res.Page)
	}
}

func TestApplyDefaultPageSize(t *testing.T) {
	var items []row
	for i := 0; i < 30; i++ {
		items = append(items, row{Name: "item"})
	}

	res := Apply(items, Params{}, rowSchema())
	if len(res.Items) != DefaultPageSize {
		t.Errorf("Expected default page size %d, got %d", DefaultPageSize, len(res.Items))
	}
}

func TestApplyUnknownSortFieldKeepsOrder(t *testing.T) {
	items := []row{{Name: "b"}, {Name: "a"}}

	res := Apply(items, Params{SortField: "missing"}, rowSchema())
	if res.Items[0].Name != "b" {
		t.Errorf("Expected input order preserved for unknown sort field")
	}
}

func TestSortStateToggle(t *testing.T) {
	s := SortState{}

	s = s.Toggle("name")
	if s.Field != "name" || s.Dir != Asc {
		t.Errorf("Expected new key ascending, got %+v", s)
	}

	s = s.Toggle("name")
	if s.Dir != Desc {
		t.Errorf("Expected same key to flip to descending, got %+v", s)
	}

	s = s.Toggle("age")
	if s.Field != "age" || s.Dir != Asc {
		t.Errorf("Expected selecting a new key to reset ascending, got %+v", s)
	}
}
