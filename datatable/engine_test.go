package datatable

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func bindForm(t *testing.T, form url.Values) Request {
	t.Helper()
	gin.SetMode(gin.TestMode)

	req := httptest.NewRequest("POST", "/grid", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	return BindRequest(c)
}

func TestBindRequest_WidgetConvention(t *testing.T) {
	form := url.Values{}
	form.Set("draw", "7")
	form.Set("start", "20")
	form.Set("length", "10")
	form.Set("search[value]", "  50 ")
	form.Set("order[0][column]", "2")
	form.Set("order[0][dir]", "desc")
	form.Set("columns[2][data]", "customerName")

	req := bindForm(t, form)

	if req.Draw != 7 || req.Start != 20 || req.Length != 10 {
		t.Fatalf("paging fields wrong: %+v", req)
	}
	if req.SearchTerm != "50" {
		t.Fatalf("expected trimmed search term %q, got %q", "50", req.SearchTerm)
	}
	if req.SortColumn != "customerName" || !req.SortDesc {
		t.Fatalf("sort fields wrong: %+v", req)
	}
}

func TestBindRequest_NormalizesBadPaging(t *testing.T) {
	cases := []struct {
		name          string
		start, length string
		wantStart     int
		wantLength    int
	}{
		{"negative start", "-5", "25", 0, 25},
		{"zero length", "0", "0", 0, defaultLength},
		{"garbage", "abc", "xyz", 0, defaultLength},
		{"missing", "", "", 0, defaultLength},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := url.Values{}
			if tc.start != "" {
				form.Set("start", tc.start)
			}
			if tc.length != "" {
				form.Set("length", tc.length)
			}
			req := bindForm(t, form)
			if req.Start != tc.wantStart || req.Length != tc.wantLength {
				t.Fatalf("got start=%d length=%d, want start=%d length=%d",
					req.Start, req.Length, tc.wantStart, tc.wantLength)
			}
		})
	}
}

func TestOrderClause_FallbackAndTieBreak(t *testing.T) {
	desc := Descriptor{
		SortMap: map[string]string{
			"orderDate":    "orders.order_date",
			"customerName": "customers.company_name",
		},
		DefaultSort: "orders.id",
		TieBreak:    "orders.id",
	}

	cases := []struct {
		name     string
		req      Request
		expected string
	}{
		{"mapped asc", Request{SortColumn: "orderDate"}, "orders.order_date ASC, orders.id ASC"},
		{"mapped desc", Request{SortColumn: "customerName", SortDesc: true}, "customers.company_name DESC, orders.id DESC"},
		{"unknown column falls back", Request{SortColumn: "totalAmount"}, "orders.id ASC"},
		{"empty column falls back", Request{SortDesc: true}, "orders.id DESC"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := orderClause(desc, tc.req); got != tc.expected {
				t.Fatalf("orderClause() = %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestOrderClause_NoDuplicateTieBreak(t *testing.T) {
	desc := Descriptor{
		SortMap:     map[string]string{"id": "orders.id"},
		DefaultSort: "orders.id",
		TieBreak:    "orders.id",
	}
	if got := orderClause(desc, Request{SortColumn: "id"}); got != "orders.id ASC" {
		t.Fatalf("orderClause() = %q, want %q", got, "orders.id ASC")
	}
}
