package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name    string   `json:"name" binding:"required,max=5"`
	Site    string   `json:"website_url" binding:"required,url"`
	Cost    *float64 `json:"cost" binding:"required"`
	Kind    string   `json:"kind" binding:"omitempty,oneof=a b"`
	Ignored string   `json:"-"`
}

func ptr(f float64) *float64 { return &f }

func TestStruct(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		fields []string
	}{
		{"valid", sample{Name: "ok", Site: "https://x.io", Cost: ptr(0)}, nil},
		{"valid pointer", &sample{Name: "ok", Site: "https://x.io", Cost: ptr(-1)}, nil},
		{"missing fields", sample{}, []string{"name", "website_url", "cost"}},
		{"too long", sample{Name: "toolong", Site: "https://x.io", Cost: ptr(1)}, []string{"name"}},
		{"bad url", sample{Name: "ok", Site: "not a url", Cost: ptr(1)}, []string{"website_url"}},
		{"bad enum", sample{Name: "ok", Site: "https://x.io", Cost: ptr(1), Kind: "c"}, []string{"kind"}},
		{"slice", []sample{{Name: "ok", Site: "https://x.io", Cost: ptr(1)}, {}}, []string{"[1].name", "[1].website_url", "[1].cost"}},
		{"slice with nil", []*sample{nil}, []string{"[0]"}},
		{"non struct", 42, nil},
		{"nil pointer", (*sample)(nil), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.input)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			verr, ok := err.(*Error)
			require.True(t, ok, "expected *Error, got %T", err)
			got := make([]string, 0, len(verr.Fields))
			for _, f := range verr.Fields {
				got = append(got, f.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := Struct(sample{Name: "toolong", Site: "nope"})
	require.Error(t, err)
	msg := err.Error()
	assert.True(t, strings.Contains(msg, "name must be at most 5 characters"), msg)
	assert.True(t, strings.Contains(msg, "website_url must be a valid URL"), msg)
	assert.True(t, strings.Contains(msg, "cost is required"), msg)
}

func TestGinValidator(t *testing.T) {
	v := GinValidator{}
	assert.NotNil(t, v.Engine())
	assert.Error(t, v.ValidateStruct(&sample{}))
	assert.NoError(t, v.ValidateStruct(&sample{Name: "a", Site: "https://a.io", Cost: ptr(2)}))
}
