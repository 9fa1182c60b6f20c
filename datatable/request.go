package datatable

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	defaultLength = 10
)

// Request is one page request in the DataTables server-side convention.
// Draw is an opaque correlation token echoed back untouched.
type Request struct {
	Draw       int
	Start      int
	Length     int
	SearchTerm string
	SortColumn string
	SortDesc   bool
}

// BindRequest reads the widget's wire fields (draw, start, length,
// search[value], order[0][column], order[0][dir], columns[n][data]) from the
// form or query string. Out-of-range paging values are normalized rather
// than rejected: the grid must always get a well-formed response.
func BindRequest(c *gin.Context) Request {
	req := Request{
		Draw:   atoiOr(formValue(c, "draw"), 0),
		Start:  atoiOr(formValue(c, "start"), 0),
		Length: atoiOr(formValue(c, "length"), defaultLength),
	}
	if req.Start < 0 {
		req.Start = 0
	}
	if req.Length <= 0 {
		req.Length = defaultLength
	}

	req.SearchTerm = strings.TrimSpace(formValue(c, "search[value]"))

	sortColumnIndex := formValue(c, "order[0][column]")
	if sortColumnIndex != "" {
		req.SortColumn = formValue(c, fmt.Sprintf("columns[%s][data]", sortColumnIndex))
	}
	req.SortDesc = strings.EqualFold(formValue(c, "order[0][dir]"), "desc")

	return req
}

func formValue(c *gin.Context, key string) string {
	return c.Request.FormValue(key)
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
