package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// DayField is the primary category field of a daily record.
const DayField = "dayofweek"

// DailyRecord is one weekday with any number of named sub-values. Keys keeps
// the sub-category names in document order; the stacked layout derives its
// segment order from the first record's Keys.
type DailyRecord struct {
	DayOfWeek string
	Keys      []string
	Values    map[string]float64
}

// NewDailyRecord builds a record whose sub-values follow keys order.
func NewDailyRecord(day string, keys []string, values []float64) DailyRecord {
	r := DailyRecord{DayOfWeek: day, Keys: append([]string(nil), keys...), Values: make(map[string]float64, len(keys))}
	for i, k := range keys {
		if i < len(values) {
			r.Values[k] = values[i]
		}
	}
	return r
}

// Value returns the sub-value for key; a missing key yields NaN, which the
// layout propagates rather than guards.
func (r DailyRecord) Value(key string) float64 {
	v, ok := r.Values[key]
	if !ok {
		return math.NaN()
	}
	return v
}

func (r *DailyRecord) set(key string, v float64) {
	if r.Values == nil {
		r.Values = map[string]float64{}
	}
	if _, seen := r.Values[key]; !seen {
		r.Keys = append(r.Keys, key)
	}
	r.Values[key] = v
}

// UnmarshalJSON decodes the object while keeping field order.
func (r *DailyRecord) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("daily record: expected object, got %v", tok)
	}
	*r = DailyRecord{}
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := kt.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("daily record field %q: %w", key, err)
		}
		if key == DayField {
			if err := json.Unmarshal(raw, &r.DayOfWeek); err != nil {
				return fmt.Errorf("daily record %s: %w", DayField, err)
			}
			continue
		}
		v := math.NaN()
		if string(raw) != "null" {
			if err := json.Unmarshal(raw, &v); err != nil {
				v = math.NaN()
			}
		}
		r.set(key, v)
	}
	_, err = dec.Token()
	return err
}

// MarshalJSON writes dayofweek first, then sub-values in Keys order. NaN and
// infinite values are written as null.
func (r DailyRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	day, _ := json.Marshal(r.DayOfWeek)
	buf.WriteString(`"` + DayField + `":`)
	buf.Write(day)
	for _, k := range r.Keys {
		kb, _ := json.Marshal(k)
		vb := []byte("null")
		if v := r.Values[k]; !math.IsNaN(v) && !math.IsInf(v, 0) {
			vb, _ = json.Marshal(v)
		}
		buf.WriteByte(',')
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalYAML decodes a mapping node while keeping key order.
func (r *DailyRecord) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("daily record: expected mapping at line %d", n.Line)
	}
	*r = DailyRecord{}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		val := n.Content[i+1]
		if key == DayField {
			r.DayOfWeek = val.Value
			continue
		}
		var v float64
		if err := val.Decode(&v); err != nil {
			v = math.NaN()
		}
		r.set(key, v)
	}
	return nil
}

// MarshalYAML mirrors MarshalJSON ordering.
func (r DailyRecord) MarshalYAML() (interface{}, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	n.Content = append(n.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: DayField},
		&yaml.Node{Kind: yaml.ScalarNode, Value: r.DayOfWeek})
	for _, k := range r.Keys {
		var v yaml.Node
		if err := v.Encode(r.Values[k]); err != nil {
			return nil, err
		}
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: k}, &v)
	}
	return n, nil
}
