package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringList_ScanValue(t *testing.T) {
	in := StringList{"go", "postgres", "with space"}
	v, err := in.Value()
	require.NoError(t, err)

	var out StringList
	require.NoError(t, out.Scan(v))
	assert.Equal(t, in, out)

	require.NoError(t, out.Scan([]byte(`{a,b}`)))
	assert.Equal(t, StringList{"a", "b"}, out)

	require.NoError(t, out.Scan(nil))
	assert.Nil(t, out)
}

func TestInt64List_ScanValue(t *testing.T) {
	in := Int64List{3, 1, 2}
	v, err := in.Value()
	require.NoError(t, err)

	var out Int64List
	require.NoError(t, out.Scan(v))
	assert.Equal(t, in, out)
}

func TestDate_JSON(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-03-15"`), &d))
	assert.Equal(t, "2024-03-15", d.String())

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-03-15"`, string(b))

	require.NoError(t, json.Unmarshal([]byte(`"2024-03-15T22:10:00Z"`), &d))
	assert.Equal(t, "2024-03-15", d.String())

	assert.Error(t, json.Unmarshal([]byte(`"15/03/2024"`), &d))
}

func TestDate_Scan(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want string
	}{
		{"time", time.Date(2023, 12, 31, 18, 30, 0, 0, time.UTC), "2023-12-31"},
		{"string", "2023-01-02", "2023-01-02"},
		{"sqlite timestamp", []byte("2023-01-02 00:00:00+00:00"), "2023-01-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			require.NoError(t, d.Scan(tt.src))
			assert.Equal(t, tt.want, d.String())
		})
	}

	var d Date
	assert.Error(t, d.Scan(42))
}
