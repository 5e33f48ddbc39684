package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ruslano69/rowsync/pkg/core/dataset"
)

func TestEncoder_TypedMode(t *testing.T) {
	e := NewEncoder(EncodeTyped)
	ts := time.Date(2023, 4, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value dataset.Value
		want  any
	}{
		{"null", dataset.Null(), nil},
		{"string", dataset.String("Alice"), "Alice"},
		{"int", dataset.Int(42), int64(42)},
		{"float", dataset.Float(10.5), 10.5},
		{"bool", dataset.Bool(true), true},
		{"time", dataset.Time(ts), ts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Arg(tt.value))
		})
	}
}

func TestEncoder_CompatModeStringifiesEverything(t *testing.T) {
	e := NewEncoder(EncodeCompat)
	ts := time.Date(2023, 4, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value dataset.Value
		want  any
	}{
		// NULL остается NULL и в режиме совместимости
		{"null", dataset.Null(), nil},
		{"string", dataset.String("Alice"), "Alice"},
		{"int", dataset.Int(42), "42"},
		{"float", dataset.Float(10.5), "10.5"},
		{"bool", dataset.Bool(true), "1"},
		{"time", dataset.Time(ts), "2023-04-01 12:30:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Arg(tt.value))
		})
	}
}

func TestEncoder_ArgsFollowColumnOrder(t *testing.T) {
	e := NewEncoder(EncodeTyped)
	row := dataset.Row{
		"a": dataset.Int(1),
		"b": dataset.String("x"),
		"c": dataset.Null(),
	}

	assert.Equal(t, []any{nil, "x", int64(1)}, e.Args(row, []string{"c", "b", "a"}))
}
