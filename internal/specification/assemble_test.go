package specification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleCustomFieldFillsEmptySchemaValue(t *testing.T) {
	spec := Specification{"description": "nice", "Processor": ""}
	custom := []CustomField{{Key: "Processor", Value: "i9"}}

	got, err := AssembleJSON(spec, custom, []string{"Processor"})
	require.NoError(t, err)
	assert.Equal(t, `{"description":"nice","Processor":"i9"}`, got)
}

func TestAssemble(t *testing.T) {
	cases := []struct {
		name   string
		spec   Specification
		custom []CustomField
		attrs  []string
		want   []Field
	}{
		{
			name: "empty input",
			spec: Specification{},
			want: nil,
		},
		{
			name:  "description first then attribute order then sorted rest",
			spec:  Specification{"Zeta": "z", "RAM": "8GB", "description": "  text  ", "Alpha": "a", "CPU": "i5"},
			attrs: []string{"RAM", "CPU"},
			want: []Field{
				{Key: "description", Value: "text"},
				{Key: "RAM", Value: "8GB"},
				{Key: "CPU", Value: "i5"},
				{Key: "Alpha", Value: "a"},
				{Key: "Zeta", Value: "z"},
			},
		},
		{
			name:   "blank values and keys dropped",
			spec:   Specification{"description": "   ", "RAM": " ", "CPU": "i5"},
			custom: []CustomField{{Key: " ", Value: "x"}, {Key: "Color", Value: "  "}, {Key: " Size ", Value: " XL "}},
			attrs:  []string{"RAM", "CPU"},
			want: []Field{
				{Key: "CPU", Value: "i5"},
				{Key: "Size", Value: "XL"},
			},
		},
		{
			name:   "custom field wins in place",
			spec:   Specification{"RAM": "8GB", "CPU": "i5"},
			custom: []CustomField{{Key: "RAM", Value: "16GB"}},
			attrs:  []string{"RAM", "CPU"},
			want: []Field{
				{Key: "RAM", Value: "16GB"},
				{Key: "CPU", Value: "i5"},
			},
		},
		{
			name:   "description matched without case",
			spec:   Specification{"Description": " text ", "RAM": "8GB"},
			custom: []CustomField{{Key: "DESCRIPTION", Value: "override"}},
			attrs:  []string{"RAM"},
			want: []Field{
				{Key: "description", Value: "text"},
				{Key: "RAM", Value: "8GB"},
			},
		},
		{
			name:   "custom description ignored",
			spec:   Specification{"description": "original"},
			custom: []CustomField{{Key: "description", Value: "override"}},
			want:   []Field{{Key: "description", Value: "original"}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Assemble(tc.spec, tc.custom, tc.attrs))
		})
	}
}

func TestAssembledOutputHasNoEmptyValues(t *testing.T) {
	spec := Specification{"description": "", "A": "", "B": "b"}
	custom := []CustomField{{Key: "C", Value: ""}, {Key: "", Value: "v"}}

	got, err := AssembleJSON(spec, custom, nil)
	require.NoError(t, err)

	for key, value := range Normalize(got) {
		assert.NotEmpty(t, key)
		assert.NotEmpty(t, value)
	}
	assert.Equal(t, `{"B":"b"}`, got)
}

func TestEncodeFieldsEscapes(t *testing.T) {
	got, err := EncodeFields([]Field{{Key: `a"b`, Value: "line\nbreak"}})
	require.NoError(t, err)
	assert.Equal(t, `{"a\"b":"line\nbreak"}`, got)
	assert.Equal(t, Specification{`a"b`: "line\nbreak"}, Normalize(got))
}

func TestToSpecification(t *testing.T) {
	fields := []Field{{Key: "RAM", Value: "8GB"}, {Key: "CPU", Value: "i5"}}
	assert.Equal(t, Specification{"RAM": "8GB", "CPU": "i5"}, ToSpecification(fields))
}
