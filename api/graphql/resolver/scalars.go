package resolver

import (
	"encoding/json"
	"fmt"
	"time"
)

// Date is an RFC 3339 timestamp.
type Date struct {
	time.Time
}

func (Date) ImplementsGraphQLType(name string) bool {
	return name == "Date"
}

func (d *Date) UnmarshalGraphQL(input interface{}) error {
	switch v := input.(type) {
	case string:
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return err
		}
		d.Time = t
		return nil
	case int32:
		d.Time = time.UnixMilli(int64(v)).UTC()
		return nil
	case int64:
		d.Time = time.UnixMilli(v).UTC()
		return nil
	case float64:
		d.Time = time.UnixMilli(int64(v)).UTC()
		return nil
	default:
		return fmt.Errorf("wrong type for Date: %T", input)
	}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time.UTC().Format(time.RFC3339Nano))
}

func dateOf(t time.Time) *Date {
	if t.IsZero() {
		return nil
	}
	return &Date{Time: t}
}

func datePtr(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	return dateOf(*t)
}

// JSON is an arbitrary JSON object.
type JSON map[string]interface{}

func (JSON) ImplementsGraphQLType(name string) bool {
	return name == "JSON"
}

func (j *JSON) UnmarshalGraphQL(input interface{}) error {
	switch v := input.(type) {
	case map[string]interface{}:
		*j = v
		return nil
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return fmt.Errorf("wrong type for JSON: %T", input)
	}
}

func (j JSON) MarshalJSON() ([]byte, error) {
	if j == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]interface{}(j))
}
