package filter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSortField(t *testing.T) {
	tests := []struct {
		input   string
		want    SortField
		wantErr bool
	}{
		{input: "name", want: SortByName},
		{input: "value", want: SortByValue},
		{input: "date", want: SortByDate},
		{input: "company", want: SortByCompany},
		{input: " Company ", want: SortByCompany},
		{input: "createdAt", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSortField(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownSortField)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSortOrder(t *testing.T) {
	got, err := ParseSortOrder("ASC")
	require.NoError(t, err)
	assert.Equal(t, Ascending, got)

	got, err = ParseSortOrder("descending")
	require.NoError(t, err)
	assert.Equal(t, Descending, got)

	_, err = ParseSortOrder("up")
	assert.ErrorIs(t, err, ErrUnknownSortOrder)
}

func TestSortField_TextRoundTrip(t *testing.T) {
	payload := struct {
		Field SortField `json:"field"`
		Order SortOrder `json:"order"`
	}{Field: SortByCompany, Order: Ascending}

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"field":"company","order":"asc"}`, string(data))

	var decoded struct {
		Field SortField `json:"field"`
		Order SortOrder `json:"order"`
	}
	require.Error(t, json.Unmarshal([]byte(`{"field":"price","order":"asc"}`), &decoded))
}

func TestSortOptions(t *testing.T) {
	opts := SortOptions()
	require.Len(t, opts, 8)

	seen := make(map[[2]uint8]bool)
	for _, opt := range opts {
		key := [2]uint8{uint8(opt.Field), uint8(opt.Order)}
		assert.False(t, seen[key], "duplicate option %s", opt.Label)
		seen[key] = true
		assert.NotEmpty(t, opt.Label)
	}

	for _, field := range SortFields() {
		assert.True(t, seen[[2]uint8{uint8(field), uint8(Ascending)}])
		assert.True(t, seen[[2]uint8{uint8(field), uint8(Descending)}])
	}
}

func TestSortLabel(t *testing.T) {
	assert.Equal(t, "Newest", SortLabel(SortByDate, Descending))
	assert.Equal(t, "Lowest value", SortLabel(SortByValue, Ascending))
	assert.Equal(t, "SortField(9) asc", SortLabel(SortField(9), Ascending))
}
