package corpus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeValuePreservesMemberOrder(t *testing.T) {
	doc := `{"zeta": 1, "alpha": 2, "mid": {"b": true, "a": null}}`
	v, err := DecodeValue(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, KindObject, v.Kind)

	keys := make([]string, len(v.Members))
	for i, m := range v.Members {
		keys[i] = m.Key
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, keys)

	mid, ok := v.Lookup("mid")
	require.True(t, ok)
	require.Len(t, mid.Members, 2)
	assert.Equal(t, "b", mid.Members[0].Key)
	assert.Equal(t, "a", mid.Members[1].Key)
}

func TestDecodeValueKinds(t *testing.T) {
	v, err := DecodeValue(strings.NewReader(`["text", 2.50, true, null, [1], {"k": "v"}]`))
	require.NoError(t, err)
	require.Equal(t, KindArray, v.Kind)
	require.Len(t, v.Items, 6)

	assert.Equal(t, KindString, v.Items[0].Kind)
	assert.Equal(t, "text", v.Items[0].Str)
	assert.Equal(t, KindNumber, v.Items[1].Kind)
	assert.Equal(t, "2.50", v.Items[1].Str, "number literal kept verbatim")
	assert.Equal(t, KindBool, v.Items[2].Kind)
	assert.True(t, v.Items[2].Bool)
	assert.Equal(t, KindNull, v.Items[3].Kind)
	assert.Equal(t, KindArray, v.Items[4].Kind)
	assert.Equal(t, KindObject, v.Items[5].Kind)
}

func TestDecodeValueScalarDocument(t *testing.T) {
	v, err := DecodeValue(strings.NewReader(`"just a string"`))
	require.NoError(t, err)
	assert.Equal(t, KindString, v.Kind)
	assert.Equal(t, "just a string", v.Str)
}

func TestDecodeValueRejectsTrailingData(t *testing.T) {
	_, err := DecodeValue(strings.NewReader(`{"a": 1} {"b": 2}`))
	assert.Error(t, err)
}

func TestDecodeValueRejectsMalformed(t *testing.T) {
	_, err := DecodeValue(strings.NewReader(`{"a": `))
	assert.Error(t, err)
}
