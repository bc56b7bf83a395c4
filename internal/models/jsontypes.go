package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSON-column helper types shared by the template and project models.

// StringList stores a list of strings as a JSON column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src any) error {
	return scanJSON(src, l)
}

// Contains reports whether s is one of the list entries.
func (l StringList) Contains(s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}

// FormulaConfig derives a row's value from an earlier numeric field:
// value = env[BaseFieldID] * (MultiplyBy or 1). Stored as a JSON column so the
// whole config stays nullable.
type FormulaConfig struct {
	BaseFieldID string   `json:"baseFieldId"`
	MultiplyBy  *float64 `json:"multiplyBy,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

func (c FormulaConfig) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *FormulaConfig) Scan(src any) error {
	return scanJSON(src, c)
}

// Multiplier returns MultiplyBy with its documented default of 1.
func (c FormulaConfig) Multiplier() float64 {
	if c.MultiplyBy == nil {
		return 1
	}
	return *c.MultiplyBy
}

func scanJSON(src, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported JSON column source %T", src)
	}
}
