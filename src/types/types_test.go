package types

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleBundle = `{
  "TOP_FRIENDS": {"friends": [
    {"imgSrc": "a.png", "likes": 14, "name": "Richard Stewart", "color": "#3b5998"},
    {"imgSrc": "b.png", "likes": 12, "name": "Rachel Gibson", "color": "#5bc0bd"}
  ]},
  "DAILY_POST_FREQUENCY": {"frequency": [
    {"dayofweek": "Mon", "status": 2, "count": 3},
    {"dayofweek": "Tue", "status": 1, "count": 4}
  ]},
  "MONTHLY_POST_FREQUENCY": {"frequency": [{"value": 1, "x": 0}, {"value": 2, "x": 11}], "color": "#3a5897"}
}`

func TestDecodeBundle_JSONKeepsDailyKeyOrder(t *testing.T) {
	b, err := DecodeBundle(strings.NewReader(sampleBundle), FormatJSON)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b.PostTypes != nil || b.TopWords != nil {
		t.Fatalf("absent members must stay nil: %+v", b)
	}
	if len(b.TopFriends.Friends) != 2 || b.TopFriends.Friends[0].Likes != 14 {
		t.Fatalf("unexpected friends: %+v", b.TopFriends)
	}
	rec := b.DailyPostFrequency.Frequency[0]
	if rec.DayOfWeek != "Mon" {
		t.Fatalf("day = %q", rec.DayOfWeek)
	}
	if got := strings.Join(rec.Keys, ","); got != "status,count" {
		t.Fatalf("keys order = %s, want status,count", got)
	}
	if rec.Value("count") != 3 {
		t.Fatalf("count = %v", rec.Value("count"))
	}
	if !math.IsNaN(rec.Value("missing")) {
		t.Fatalf("missing key should be NaN")
	}
}

func TestDailyRecord_YAMLRoundTripOrder(t *testing.T) {
	in := &Bundle{DailyPostFrequency: &DailyFrequencyData{Frequency: []DailyRecord{
		NewDailyRecord("Sun", []string{"zeta", "alpha"}, []float64{1.5, 2}),
	}}}
	var buf bytes.Buffer
	if err := EncodeBundle(&buf, in, FormatYAML); err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := DecodeBundle(&buf, FormatYAML)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	rec := out.DailyPostFrequency.Frequency[0]
	if strings.Join(rec.Keys, ",") != "zeta,alpha" || rec.Value("zeta") != 1.5 {
		t.Fatalf("yaml order/value lost: %+v", rec)
	}
}

func TestDailyRecord_MarshalJSONOrder(t *testing.T) {
	rec := NewDailyRecord("Wed", []string{"b", "a"}, []float64{1, 2})
	got, err := rec.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(got) != `{"dayofweek":"Wed","b":1,"a":2}` {
		t.Fatalf("unexpected json %s", got)
	}
}

func TestDailyRecord_NaNWritesNull(t *testing.T) {
	rec := NewDailyRecord("Thu", []string{"status", "count"}, []float64{math.NaN(), 3})
	got, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(got) != `{"dayofweek":"Thu","status":null,"count":3}` {
		t.Fatalf("unexpected json %s", got)
	}
	var back DailyRecord
	if err := json.Unmarshal(got, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !math.IsNaN(back.Value("status")) || back.Value("count") != 3 {
		t.Fatalf("decoded %+v", back)
	}
}

func TestLoadBundle_ByExtension(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "stats.yaml")
	in := &Bundle{TopWords: &TopWordsData{HTML: "<li>x</li>", TopWord: "golang"}}
	if err := SaveBundle(p, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, _ := os.ReadFile(p)
	if !strings.Contains(string(raw), "TOP_WORDS:") {
		t.Fatalf("expected yaml output, got %s", raw)
	}
	out, err := LoadBundle(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.TopWords == nil || out.TopWords.TopWord != "golang" {
		t.Fatalf("unexpected top words: %+v", out.TopWords)
	}
}
