package services

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNullableTimeDistinguishesAbsentAndNull(t *testing.T) {
	type body struct {
		Date NullableTime `json:"date"`
	}

	var absent body
	if err := json.Unmarshal([]byte(`{}`), &absent); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if absent.Date.Set {
		t.Error("absent field must not be marked set")
	}

	var null body
	if err := json.Unmarshal([]byte(`{"date":null}`), &null); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !null.Date.Set || null.Date.Value != nil {
		t.Error("explicit null must be set with a nil value")
	}

	var value body
	if err := json.Unmarshal([]byte(`{"date":"2024-03-08T10:30:00Z"}`), &value); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !value.Date.Set || value.Date.Value == nil {
		t.Fatal("timestamp must be set with a value")
	}
	want := time.Date(2024, time.March, 8, 10, 30, 0, 0, time.UTC)
	if !value.Date.Value.Equal(want) {
		t.Errorf("got %v, want %v", value.Date.Value, want)
	}
}

func TestNullableTimeAcceptsPlainDates(t *testing.T) {
	var n NullableTime
	if err := n.UnmarshalJSON([]byte(`"2024-03-08"`)); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if n.Value == nil || !n.Value.Equal(time.Date(2024, time.March, 8, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("got %v", n.Value)
	}
}

func TestNullableTimeRejectsGarbage(t *testing.T) {
	var n NullableTime
	if err := n.UnmarshalJSON([]byte(`"next tuesday"`)); err == nil {
		t.Fatal("expected an error for an unparseable time")
	}
}

func TestNullableTimeMarshal(t *testing.T) {
	at := time.Date(2024, time.March, 8, 10, 0, 0, 0, time.UTC)
	data, err := json.Marshal(At(at))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2024-03-08T10:00:00Z"` {
		t.Errorf("got %s", data)
	}

	data, err = json.Marshal(Null())
	if err != nil {
		t.Fatalf("marshal null: %v", err)
	}
	if string(data) != "null" {
		t.Errorf("got %s", data)
	}
}
