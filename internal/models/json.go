package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSON is a free-form object stored in a jsonb column.
type JSON map[string]interface{}

// Value implements the driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements the sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*j = nil
		return nil
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return errors.New("models: unsupported JSON column type")
	}
}

// FloatMap converts a map of weights into a JSON column value.
func FloatMap(m map[string]float64) JSON {
	if len(m) == 0 {
		return nil
	}
	out := make(JSON, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
