package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// JSONMap stores an arbitrary document payload as a jsonb column
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = JSONMap{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}

	return json.Unmarshal(data, m)
}

type Document struct {
	Collection string    `gorm:"primaryKey;size:255" json:"collection"`
	DocID      string    `gorm:"primaryKey;size:255;column:doc_id" json:"id"`
	Data       JSONMap   `gorm:"type:jsonb" json:"data"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
