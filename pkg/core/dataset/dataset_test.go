package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataset_AppendAndGet(t *testing.T) {
	ds := New("id", "name")
	require.NoError(t, ds.Append(Int(1), String("Alice")))
	require.Error(t, ds.Append(Int(2)), "arity mismatch must be rejected")

	assert.Equal(t, 1, ds.NumRows())
	assert.Equal(t, "id", ds.KeyColumn())
	assert.True(t, Int(1).Equal(ds.Get(0, "id")))
	assert.True(t, ds.Get(0, "missing").IsNull())
	assert.True(t, ds.Get(5, "id").IsNull())
}

func TestDataset_Validate(t *testing.T) {
	tests := []struct {
		name    string
		build   func() *Dataset
		wantErr string
	}{
		{
			name: "valid",
			build: func() *Dataset {
				ds := New("id", "name")
				ds.AppendRow(Row{"id": Int(1), "name": Null()})
				return ds
			},
		},
		{
			name:    "no columns",
			build:   func() *Dataset { return New() },
			wantErr: "no columns",
		},
		{
			name:    "duplicate column",
			build:   func() *Dataset { return New("id", "id") },
			wantErr: "duplicate column",
		},
		{
			name: "unknown column in row",
			build: func() *Dataset {
				ds := New("id")
				ds.AppendRow(Row{"id": Int(1), "ghost": Int(2)})
				return ds
			},
			wantErr: "unknown column",
		},
		{
			name: "null identifier",
			build: func() *Dataset {
				ds := New("id", "name")
				ds.AppendRow(Row{"id": Null(), "name": String("x")})
				return ds
			},
			wantErr: "key column",
		},
		{
			name: "missing identifier",
			build: func() *Dataset {
				ds := New("id", "name")
				ds.AppendRow(Row{"name": String("x")})
				return ds
			},
			wantErr: "key column",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build().Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDataset_NormalizedFillsNullsWithoutMutating(t *testing.T) {
	ds := New("id", "name", "balance")
	ds.AppendRow(Row{"id": Int(1)})

	norm := ds.Normalized()

	require.Equal(t, 1, norm.NumRows())
	assert.True(t, norm.Rows[0]["name"].IsNull())
	assert.True(t, norm.Rows[0]["balance"].IsNull())

	_, hasName := ds.Rows[0]["name"]
	assert.False(t, hasName, "source dataset must stay untouched")
}

func TestDataset_CloneIsDeep(t *testing.T) {
	ds := New("id", "name")
	ds.AppendRow(Row{"id": Int(1), "name": String("Alice")})

	clone := ds.Clone()
	clone.Rows[0]["name"] = String("Mallory")
	clone.Columns[0] = "other"

	assert.Equal(t, "id", ds.Columns[0])
	assert.True(t, String("Alice").Equal(ds.Rows[0]["name"]))
}

func TestDataset_Equal(t *testing.T) {
	a := New("id", "name")
	require.NoError(t, a.Append(Int(1), String("Alice")))

	b := a.Clone()
	assert.True(t, a.Equal(b))

	b.Rows[0]["name"] = String("Bob")
	assert.False(t, a.Equal(b))

	c := New("id")
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}

func TestDataset_ChecksumDistinguishesNullFromEmptyString(t *testing.T) {
	a := New("id", "name")
	require.NoError(t, a.Append(Int(1), Null()))

	b := New("id", "name")
	require.NoError(t, b.Append(Int(1), String("")))

	assert.NotEqual(t, a.Checksum(), b.Checksum())
	assert.Equal(t, a.Checksum(), a.Clone().Checksum())
	assert.Len(t, a.ChecksumHex(), 16)
}
