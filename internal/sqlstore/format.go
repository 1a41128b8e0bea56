package sqlstore

import (
	"fmt"
	"io"
	"strings"
)

// WriteTable renders r as a pipe-separated text table.
func (r *Result) WriteTable(w io.Writer) error {
	if _, err := fmt.Fprintln(w, strings.Join(r.Columns, " | ")); err != nil {
		return err
	}
	for _, row := range r.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			if v == nil {
				cells[i] = "NULL"
				continue
			}
			cells[i] = fmt.Sprint(v)
		}
		if _, err := fmt.Fprintln(w, strings.Join(cells, " | ")); err != nil {
			return err
		}
	}
	return nil
}
