package rest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDetailString(t *testing.T) {
	d := ParseDetail(json.RawMessage(`"Code already exists"`))
	assert.Equal(t, DetailMessage, d.Kind)
	assert.Equal(t, "Code already exists", d.String())
}

func TestParseDetailFieldErrors(t *testing.T) {
	raw := json.RawMessage(`[
		{"loc": ["body", "discount_value"], "msg": "value is not a valid float"},
		{"loc": ["body", "code"], "msg": "field required"}
	]`)
	d := ParseDetail(raw)
	assert.Equal(t, DetailFieldErrors, d.Kind)
	assert.Len(t, d.Fields, 2)
	assert.Equal(t, "discount_value", d.Fields[0].Loc)
	assert.Equal(t, "discount_value: value is not a valid float; code: field required", d.String())
}

func TestParseDetailObject(t *testing.T) {
	d := ParseDetail(json.RawMessage(`{"msg": "insufficient balance"}`))
	assert.Equal(t, DetailMessage, d.Kind)
	assert.Equal(t, "insufficient balance", d.String())
}

func TestParseDetailUnknown(t *testing.T) {
	for _, raw := range []string{"", "null", "42", `{"oops": true}`} {
		d := ParseDetail(json.RawMessage(raw))
		assert.Equal(t, DetailUnknown, d.Kind, "raw=%q", raw)
		assert.Equal(t, "The request failed", d.String())
	}
}
