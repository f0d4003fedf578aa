package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// The profile, skills, availability and preferences sub-records are persisted
// as JSON text inside the account row so that the row stays the single unit
// of consistency.

func scanJSON(src interface{}, dest interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported column type %T", src)
	}
}

func valueJSON(src interface{}) (driver.Value, error) {
	data, err := json.Marshal(src)
	if err != nil {
		return nil, fmt.Errorf("marshalling column: %w", err)
	}
	return string(data), nil
}

func (p *Profile) Scan(src interface{}) error  { return scanJSON(src, p) }
func (p Profile) Value() (driver.Value, error) { return valueJSON(p) }

func (s *Skills) Scan(src interface{}) error  { return scanJSON(src, s) }
func (s Skills) Value() (driver.Value, error) { return valueJSON(s) }

func (a *Availability) Scan(src interface{}) error  { return scanJSON(src, a) }
func (a Availability) Value() (driver.Value, error) { return valueJSON(a) }

func (p *Preferences) Scan(src interface{}) error  { return scanJSON(src, p) }
func (p Preferences) Value() (driver.Value, error) { return valueJSON(p) }
