package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// SessionStatus represents the lifecycle state of a cash session
type SessionStatus int

const (
	SessionStatusOpen      SessionStatus = 0
	SessionStatusClosed    SessionStatus = 1
	SessionStatusAbandoned SessionStatus = 2
)

func (s SessionStatus) String() string {
	return [...]string{"Open", "Closed", "Abandoned"}[s]
}

func (s SessionStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SessionStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = SessionStatus(i)
		return nil
	}
	switch str {
	case "Open":
		*s = SessionStatusOpen
	case "Closed":
		*s = SessionStatusClosed
	case "Abandoned":
		*s = SessionStatusAbandoned
	}
	return nil
}

func (s SessionStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *SessionStatus) Scan(value interface{}) error {
	if value == nil {
		*s = SessionStatusOpen
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = SessionStatus(v)
	case int:
		*s = SessionStatus(v)
	}
	return nil
}
