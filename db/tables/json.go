package tables

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// MapStructure is a free-form payload stored as a json column.
type MapStructure map[string]interface{}

// Value serializes the payload for the driver.
func (m MapStructure) Value() (driver.Value, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return driver.Value(""), err
	}
	return driver.Value(string(data)), nil
}

// Scan reads the payload back from a string or byte column, null
// scans as an empty payload.
func (m MapStructure) Scan(src interface{}) error {
	var source []byte
	switch v := src.(type) {
	case string:
		source = []byte(v)
	case []byte:
		source = v
	case nil:
		source = []byte("{}")
	default:
		return fmt.Errorf("error scanning json value: %+v", src)
	}
	if len(source) == 0 {
		source = []byte("{}")
	}
	return json.Unmarshal(source, &m)
}
