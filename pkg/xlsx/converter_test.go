package xlsx

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruslano69/rowsync/pkg/core/dataset"
)

func TestXLSX_RoundTrip(t *testing.T) {
	ds := dataset.New("id", "name", "balance", "since")
	require.NoError(t, ds.Append(
		dataset.Int(1),
		dataset.String("Alice"),
		dataset.Null(),
		dataset.Time(time.Date(2023, 4, 1, 12, 30, 0, 0, time.UTC)),
	))
	require.NoError(t, ds.Append(
		dataset.Int(2),
		dataset.String("Bob"),
		dataset.Float(10.5),
		dataset.Null(),
	))

	path := filepath.Join(t.TempDir(), "accounts.xlsx")
	require.NoError(t, ToXLSX(ds, path, "accounts"))

	restored, err := FromXLSX(path, "accounts")
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name", "balance", "since"}, restored.Columns)
	require.Equal(t, 2, restored.NumRows())

	assert.True(t, dataset.Int(1).Equal(restored.Get(0, "id")))
	assert.True(t, dataset.String("Alice").Equal(restored.Get(0, "name")))
	assert.True(t, restored.Get(0, "balance").IsNull())
	assert.True(t, dataset.Float(10.5).Equal(restored.Get(1, "balance")))
	assert.True(t, restored.Get(1, "since").IsNull())
}

func TestFromXLSX_MissingFile(t *testing.T) {
	_, err := FromXLSX(filepath.Join(t.TempDir(), "nope.xlsx"), "")
	require.Error(t, err)
}

func TestInferValue(t *testing.T) {
	tests := []struct {
		in   string
		want dataset.Value
	}{
		{"", dataset.Null()},
		{"42", dataset.Int(42)},
		{"-3", dataset.Int(-3)},
		{"10.5", dataset.Float(10.5)},
		{"TRUE", dataset.Bool(true)},
		{"false", dataset.Bool(false)},
		{"2023-04-01 12:30:00", dataset.Time(time.Date(2023, 4, 1, 12, 30, 0, 0, time.UTC))},
		{"Alice", dataset.String("Alice")},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := inferValue(tt.in)
			assert.True(t, tt.want.Equal(got), "got %v (%s)", got, got.Kind())
		})
	}
}

func TestColumnName(t *testing.T) {
	assert.Equal(t, "A", columnName(1))
	assert.Equal(t, "Z", columnName(26))
	assert.Equal(t, "AA", columnName(27))
	assert.Equal(t, "AB", columnName(28))
}
