package timeutil

import (
	"encoding/json"
	"testing"
	"time"
)

func TestMarshalJSONUsesMillisUTC(t *testing.T) {
	ts := Time{Time: time.Date(2025, 5, 10, 9, 8, 7, 123456789, time.FixedZone("BRT", -3*60*60))}

	data, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := string(data); got != `"2025-05-10T12:08:07.123Z"` {
		t.Fatalf("unexpected JSON: %s", got)
	}
}

func TestUnmarshalJSONAcceptsPrecisions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"seconds", `"2025-05-10T12:08:07Z"`, time.Date(2025, 5, 10, 12, 8, 7, 0, time.UTC)},
		{"millis", `"2025-05-10T12:08:07.123Z"`, time.Date(2025, 5, 10, 12, 8, 7, 123000000, time.UTC)},
		{"offset", `"2025-05-10T09:08:07-03:00"`, time.Date(2025, 5, 10, 12, 8, 7, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Time
			if err := json.Unmarshal([]byte(tt.input), &ts); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !ts.Equal(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, ts.Time)
			}
		})
	}
}

func TestUnmarshalJSONNullPreservesValue(t *testing.T) {
	orig := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	ts := Time{Time: orig}

	if err := json.Unmarshal([]byte(`null`), &ts); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !ts.Equal(orig) {
		t.Fatalf("expected value preserved, got %v", ts.Time)
	}
}

func TestUnmarshalJSONRejectsGarbage(t *testing.T) {
	var ts Time
	if err := json.Unmarshal([]byte(`"yesterday"`), &ts); err == nil {
		t.Fatal("expected error for non-RFC 3339 input")
	}
}

func TestNowIsRecent(t *testing.T) {
	if d := time.Since(Now().Time); d < 0 || d > time.Minute {
		t.Fatalf("unexpected Now() drift: %v", d)
	}
}
