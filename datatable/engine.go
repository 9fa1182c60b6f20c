package datatable

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Descriptor declares one grid's server-side behavior: how to build the base
// query (with every join eagerly resolved in one round trip), which SQL text
// expressions participate in the global search, how logical sort names map to
// SQL expressions, and how to project the page into response rows.
//
// Derived columns (e.g. an order total folded from detail rows) belong in the
// projection select, so they are only computed for the rows that survive
// pagination. Sorting by a derived column is intentionally not supported:
// a sort request naming a column absent from SortMap falls back to
// DefaultSort, exactly like an unrecognized column name.
type Descriptor struct {
	// Base returns a fresh base query. Called once per count/page pass so
	// clause state never leaks between passes.
	Base func(db *gorm.DB) *gorm.DB

	// SearchExprs are SQL expressions producing text; a row matches when any
	// of them, upper-cased, contains the upper-cased search term. Numeric
	// identifiers must be CAST to text in the expression.
	SearchExprs []string

	// SortMap maps the widget's logical column names to SQL expressions.
	SortMap map[string]string

	// DefaultSort is the SQL expression used when the requested column is
	// unknown or absent. TieBreak is appended to every ordering so paging is
	// reproducible across requests.
	DefaultSort string
	TieBreak    string

	// Scan applies the projection to the prepared page query and returns the
	// response rows.
	Scan func(page *gorm.DB) (interface{}, error)
}

// Response is the DataTables wire shape. Data is a slice of projected rows.
type Response struct {
	Draw            int         `json:"draw"`
	RecordsTotal    int64       `json:"recordsTotal"`
	RecordsFiltered int64       `json:"recordsFiltered"`
	Data            interface{} `json:"data"`
}

// Execute runs the count/filter/sort/page/project pipeline for one request.
func Execute(ctx context.Context, db *gorm.DB, req Request, desc Descriptor) (*Response, error) {
	base := desc.Base(db.WithContext(ctx))

	var recordsTotal int64
	if err := base.Count(&recordsTotal).Error; err != nil {
		return nil, err
	}

	filtered := ApplySearch(desc.Base(db.WithContext(ctx)), desc, req.SearchTerm)

	var recordsFiltered int64
	if err := filtered.Count(&recordsFiltered).Error; err != nil {
		return nil, err
	}

	page := ApplySearch(desc.Base(db.WithContext(ctx)), desc, req.SearchTerm).
		Order(orderClause(desc, req)).
		Offset(req.Start).
		Limit(req.Length)

	data, err := desc.Scan(page)
	if err != nil {
		return nil, err
	}

	return &Response{
		Draw:            req.Draw,
		RecordsTotal:    recordsTotal,
		RecordsFiltered: recordsFiltered,
		Data:            data,
	}, nil
}

// ApplySearch applies the descriptor's global search filter to a query. Exposed
// so non-grid consumers (Excel export) can reuse the exact filter semantics.
func ApplySearch(query *gorm.DB, desc Descriptor, term string) *gorm.DB {
	term = strings.ToUpper(strings.TrimSpace(term))
	if term == "" || len(desc.SearchExprs) == 0 {
		return query
	}

	conds := make([]string, 0, len(desc.SearchExprs))
	args := make([]interface{}, 0, len(desc.SearchExprs))
	for _, expr := range desc.SearchExprs {
		conds = append(conds, "UPPER("+expr+") LIKE ?")
		args = append(args, "%"+term+"%")
	}
	return query.Where(strings.Join(conds, " OR "), args...)
}

func orderClause(desc Descriptor, req Request) string {
	expr, ok := desc.SortMap[req.SortColumn]
	if !ok || expr == "" {
		expr = desc.DefaultSort
	}

	dir := " ASC"
	if req.SortDesc {
		dir = " DESC"
	}

	clause := expr + dir
	if desc.TieBreak != "" && desc.TieBreak != expr {
		clause += ", " + desc.TieBreak + dir
	}
	return clause
}

// Respond writes the grid response. Failures become {"error": message} with
// a success status: the widget cannot render a 500, so callers distinguish
// errors by the presence of the error key. The tradeoff (real bugs are
// swallowed into the payload) is accepted for wire compatibility.
func Respond(c *gin.Context, resp *Response, err error) {
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}
