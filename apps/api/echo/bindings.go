package echoapi

import (
	"strings"

	"github.com/labstack/echo/v4"
)

var orderingParam = "ordering"

type OrderingField struct {
	Name      string
	Ascending bool
}

// Ordering binds the "ordering" query parameter: comma separated field names, "-" prefix for descending.
type Ordering struct {
	Fields []OrderingField
}

func (ord *Ordering) Bind(ctx echo.Context) {
	data := ctx.QueryParams()
	if len(data) == 0 {
		return
	}
	val, ok := data[orderingParam]
	if !ok || len(val) == 0 || val[0] == "" {
		return
	}

	for _, field := range strings.Split(val[0], ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		if field == "" {
			continue
		}
		ord.Fields = append(ord.Fields, OrderingField{Name: field, Ascending: !descending})
	}
}

func (ord Ordering) Descending(field string) bool {
	for _, f := range ord.Fields {
		if f.Name == field {
			return !f.Ascending
		}
	}
	return false
}
