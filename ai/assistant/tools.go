package assistant

import (
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ExecuteSQL runs a read-only SQL query and returns the result as a JSON
// string. Only SELECT is allowed; the ledger is append-only and the
// assistant must not write through the side door.
func ExecuteSQL(db *gorm.DB, query string) (string, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(query))
	if !strings.HasPrefix(trimmed, "SELECT") {
		return "", fmt.Errorf("only SELECT queries are allowed")
	}

	rows, err := db.Raw(query).Rows()
	if err != nil {
		return "", err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return "", err
	}

	results := []map[string]interface{}{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range columns {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return "", err
		}

		rowMap := make(map[string]interface{})
		for i, col := range columns {
			var v interface{}
			val := values[i]
			b, ok := val.([]byte)
			if ok {
				v = string(b)
			} else {
				v = val
			}
			rowMap[col] = v
		}
		results = append(results, rowMap)
	}

	jsonBytes, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", err
	}

	return string(jsonBytes), nil
}
