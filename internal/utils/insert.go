package querybuilder

type InsertRows [][]interface{} // multiple Rows

// UpdateData maps column name to its new value for UPDATE statements.
type UpdateData map[string]interface{}

func (rows InsertRows) Columns() []string {
	if len(rows) == 0 {
		return []string{}
	}
	firstRow := rows[0]
	columns := make([]string, len(firstRow))
	//for i := range firstRow {
	//	columns[i] = nil
	//}
	return columns
}
