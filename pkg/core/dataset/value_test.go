package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValue_TextAndString(t *testing.T) {
	ts := time.Date(2023, 4, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		value      Value
		wantText   string
		wantString string
	}{
		{"null", Null(), "", "NULL"},
		{"string", String("Alice"), "Alice", "Alice"},
		{"int", Int(-42), "-42", "-42"},
		{"float", Float(10.5), "10.5", "10.5"},
		{"bool true", Bool(true), "1", "1"},
		{"bool false", Bool(false), "0", "0"},
		{"time", Time(ts), "2023-04-01 12:30:00", "2023-04-01 12:30:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantText, tt.value.Text())
			assert.Equal(t, tt.wantString, tt.value.String())
		})
	}
}

func TestValue_Native(t *testing.T) {
	ts := time.Date(2023, 4, 1, 12, 30, 0, 0, time.UTC)

	assert.Nil(t, Null().Native())
	assert.Equal(t, "x", String("x").Native())
	assert.Equal(t, int64(7), Int(7).Native())
	assert.Equal(t, 1.5, Float(1.5).Native())
	assert.Equal(t, true, Bool(true).Native())
	assert.Equal(t, ts, Time(ts).Native())
}

func TestFromAny(t *testing.T) {
	ts := time.Date(2023, 4, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want Value
	}{
		{"nil", nil, Null()},
		{"string", "x", String("x")},
		{"bytes", []byte("x"), String("x")},
		{"int64", int64(7), Int(7)},
		{"int", 7, Int(7)},
		{"int32", int32(7), Int(7)},
		{"float64", 1.5, Float(1.5)},
		{"float32", float32(0.5), Float(0.5)},
		{"bool", true, Bool(true)},
		{"time", ts, Time(ts)},
		{"fallback", struct{ X int }{1}, String("{1}")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(FromAny(tt.in)), "got %v", FromAny(tt.in))
		})
	}
}

func TestValue_Equal(t *testing.T) {
	assert.True(t, Null().Equal(Null()))
	assert.True(t, Null().Equal(Value{}), "zero value is NULL")
	assert.False(t, Int(1).Equal(Float(1)))
	assert.False(t, String("1").Equal(Int(1)))
	assert.True(t, Int(1).Equal(Int(1)))

	moscow := time.FixedZone("MSK", 3*60*60)
	utc := time.Date(2023, 4, 1, 9, 0, 0, 0, time.UTC)
	assert.True(t, Time(utc).Equal(Time(utc.In(moscow))), "same instant, different zones")
}
