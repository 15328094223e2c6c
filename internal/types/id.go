package types

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// RecordID identifies a row persisted by the billing api.
// The api issues integer ids but some endpoints echo them as strings, so
// both forms are accepted. The zero value means "not persisted yet".
type RecordID string

func (id RecordID) String() string {
	return string(id)
}

// IsZero reports whether the id is unset
func (id RecordID) IsZero() bool {
	return id == ""
}

func (id RecordID) MarshalJSON() ([]byte, error) {
	if id.IsZero() {
		return []byte("null"), nil
	}
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id *RecordID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = RecordID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = RecordID(n.String())
	return nil
}
