package pagination

import "testing"

func TestValidateClampsParams(t *testing.T) {
	tests := []struct {
		name        string
		in          PaginationParams
		wantPage    int
		wantPerPage int
	}{
		{"zero values", PaginationParams{}, 1, 15},
		{"negative page", PaginationParams{Page: -3, PerPage: 20}, 1, 20},
		{"per page too large", PaginationParams{Page: 2, PerPage: 500}, 2, 100},
		{"valid values", PaginationParams{Page: 3, PerPage: 25}, 3, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Validate()
			if tt.in.Page != tt.wantPage {
				t.Errorf("page = %d, want %d", tt.in.Page, tt.wantPage)
			}
			if tt.in.PerPage != tt.wantPerPage {
				t.Errorf("per page = %d, want %d", tt.in.PerPage, tt.wantPerPage)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	p := PaginationParams{Page: 3, PerPage: 20}
	if got := p.Offset(); got != 40 {
		t.Errorf("offset = %d, want 40", got)
	}
}

func TestNewPagination(t *testing.T) {
	pag := NewPagination(2, 10, 35)

	if pag.TotalPages != 4 {
		t.Errorf("total pages = %d, want 4", pag.TotalPages)
	}
	if !pag.HasNext {
		t.Error("page 2 of 4 should have next")
	}
	if !pag.HasPrev {
		t.Error("page 2 should have prev")
	}

	last := NewPagination(4, 10, 35)
	if last.HasNext {
		t.Error("last page should not have next")
	}
}
