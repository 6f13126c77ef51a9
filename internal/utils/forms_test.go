package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexNumbers(t *testing.T) {
	var in struct {
		A *FlexInt   `json:"a"`
		B *FlexInt   `json:"b"`
		C *FlexFloat `json:"c"`
		D *FlexFloat `json:"d"`
		E *FlexInt   `json:"e"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 150, "b": " 40 ", "c": "19.99", "d": 5}`), &in))

	assert.Equal(t, 150, in.A.Int())
	assert.Equal(t, 40, in.B.Int())
	assert.Equal(t, 19.99, *in.C.Float64Ptr())
	assert.Equal(t, 5.0, *in.D.Float64Ptr())
	assert.Nil(t, in.E)
	assert.Equal(t, 0, in.E.Int())

	assert.Error(t, json.Unmarshal([]byte(`{"a": "lots"}`), &in))
	assert.Error(t, json.Unmarshal([]byte(`{"c": ""}`), &in))
}

func TestFlexNumbersRejectNonFinite(t *testing.T) {
	floats := []string{`"Infinity"`, `"-Inf"`, `"inf"`, `"NaN"`, `"nan"`, `1e400`}
	for _, raw := range floats {
		var f FlexFloat
		assert.Error(t, json.Unmarshal([]byte(raw), &f), raw)
	}

	ints := []string{`"Infinity"`, `"NaN"`, `"1e30"`, `1e30`, `-1e30`, `"3000000000"`}
	for _, raw := range ints {
		var n FlexInt
		assert.Error(t, json.Unmarshal([]byte(raw), &n), raw)
	}

	var n FlexInt
	require.NoError(t, json.Unmarshal([]byte(`"2147483647"`), &n))
	assert.Equal(t, 2147483647, n.Int())
	require.NoError(t, json.Unmarshal([]byte(`"-5"`), &n))
	assert.Equal(t, -5, n.Int())
}

func TestStringList(t *testing.T) {
	var in struct {
		Sizes  StringList `json:"Sizes"`
		Colors StringList `json:"Colors"`
		Tags   StringList `json:"Tags"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"Sizes": "S, M ,L,,", "Colors": ["Red", " Blue "], "Tags": null}`), &in))

	assert.Equal(t, StringList{"S", "M", "L"}, in.Sizes)
	assert.Equal(t, StringList{"Red", "Blue"}, in.Colors)
	assert.Nil(t, in.Tags)
	assert.Equal(t, []string{}, in.Tags.OrEmpty())

	assert.Error(t, json.Unmarshal([]byte(`{"Sizes": 12}`), &in))
}

func TestNormalizeImagePath(t *testing.T) {
	cases := map[string]string{
		"uploads/inventory/1700-shirt.png":          "uploads/inventory/1700-shirt.png",
		"/srv/app/uploads/inventory/1700-shirt.png": "uploads/inventory/1700-shirt.png",
		`C:\Users\me\Pictures\shirt.png`:            "uploads/inventory/shirt.png",
		"shirt.png":                                 "uploads/inventory/shirt.png",
		"https://cdn.example.com/img/shirt.png":     "uploads/inventory/shirt.png",
		`D:\app\uploads\inventory\1700-dress.jpg`:   "uploads/inventory/1700-dress.jpg",
	}
	for in, want := range cases {
		got, err := NormalizeImagePath(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := NormalizeImagePath("   ")
	assert.Error(t, err)
}

func TestFlexTime(t *testing.T) {
	var in struct {
		A *FlexTime `json:"a"`
		B *FlexTime `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": "2030-12-31", "b": "2030-12-31T10:00:00Z"}`), &in))
	assert.Equal(t, 2030, in.A.Time().Year())
	assert.Equal(t, 10, in.B.Time().Hour())

	assert.Error(t, json.Unmarshal([]byte(`{"a": "next week"}`), &in))
}
