package entity

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// KeywordList is stored as a comma-joined TEXT column.
type KeywordList []string

// Value implements driver.Valuer.
func (k KeywordList) Value() (driver.Value, error) {
	return strings.Join(k, ","), nil
}

// Scan implements sql.Scanner.
func (k *KeywordList) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case nil:
		*k = KeywordList{}
		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into KeywordList", src)
	}

	if s == "" {
		*k = KeywordList{}
		return nil
	}
	*k = strings.Split(s, ",")
	return nil
}
