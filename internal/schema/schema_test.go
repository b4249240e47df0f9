package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rgbDoc = `{
	"kind": "type",
	"id": "rgb-color",
	"name": "RGB Color",
	"initializers": [
		{"keyword": "rgb", "script": {"file": "init.lcs"}}
	],
	"conversions": [
		{"source": "$self", "target": "hex-color", "lossless": true, "script": {"file": "to-hex.lcs"}},
		{"source": "hex-color", "target": "$self", "lossless": true, "script": {"file": "from-hex.lcs"}}
	]
}`

const invertDoc = `{
	"kind": "function",
	"id": "invert",
	"keyword": "invert",
	"input": {"arity": 1},
	"script": {"file": "invert.lcs"},
	"requires": ["rgb-color"]
}`

func TestDocument_UnmarshalTypeKind(t *testing.T) {
	t.Parallel()

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(rgbDoc), &doc))

	assert.Equal(t, KindType, doc.Kind)
	assert.Equal(t, "rgb-color", doc.ID)
	require.NotNil(t, doc.Type)
	assert.Nil(t, doc.Function)
	require.Len(t, doc.Type.Initializers, 1)
	require.Len(t, doc.Type.Conversions, 2)
	assert.Equal(t, SelfRef, doc.Type.Conversions[0].Source)
	assert.Equal(t, "hex-color", doc.Type.Conversions[0].Target)
	assert.True(t, doc.Type.Conversions[0].Lossless)
}

func TestDocument_UnmarshalFunctionKind(t *testing.T) {
	t.Parallel()

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(invertDoc), &doc))

	assert.Equal(t, KindFunction, doc.Kind)
	require.NotNil(t, doc.Function)
	assert.Nil(t, doc.Type)
	assert.Equal(t, "invert", doc.Function.Keyword)
	assert.Equal(t, "invert.lcs", doc.Function.Script.File)
	assert.Equal(t, []string{"rgb-color"}, doc.Function.Requires)
	assert.JSONEq(t, `{"arity": 1}`, string(doc.Function.Input))
}

func TestDocument_UnmarshalErrors(t *testing.T) {
	t.Parallel()

	t.Run("unknown kind", func(t *testing.T) {
		var doc Document
		err := json.Unmarshal([]byte(`{"kind": "gradient", "id": "x"}`), &doc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown kind")
	})

	t.Run("missing id", func(t *testing.T) {
		var doc Document
		err := json.Unmarshal([]byte(`{"kind": "type"}`), &doc)
		require.Error(t, err)
	})

	t.Run("function without script", func(t *testing.T) {
		var doc Document
		err := json.Unmarshal([]byte(`{"kind": "function", "id": "invert"}`), &doc)
		require.Error(t, err)
	})
}

func TestDocument_RoundTrip(t *testing.T) {
	t.Parallel()

	for name, src := range map[string]string{"type": rgbDoc, "function": invertDoc} {
		t.Run(name, func(t *testing.T) {
			var doc Document
			require.NoError(t, json.Unmarshal([]byte(src), &doc))

			data, err := json.Marshal(&doc)
			require.NoError(t, err)

			var again Document
			require.NoError(t, json.Unmarshal(data, &again))

			// Raw JSON payloads may be recompacted, so compare the
			// serialized forms rather than the structs.
			data2, err := json.Marshal(&again)
			require.NoError(t, err)
			assert.JSONEq(t, string(data), string(data2))
			assert.Equal(t, doc.Kind, again.Kind)
			assert.Equal(t, doc.ID, again.ID)
		})
	}
}

func TestDocument_ScriptRefs(t *testing.T) {
	t.Parallel()

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(rgbDoc), &doc))

	refs := doc.ScriptRefs()
	require.Len(t, refs, 3)

	// Mutating through the returned pointers must update the document, the
	// inliner depends on it.
	refs[0].Source = "body"
	refs[0].File = ""
	assert.Equal(t, "body", doc.Type.Initializers[0].Script.Source)
}

func TestDocument_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(rgbDoc), &doc))

	clone := doc.Clone()
	clone.Type.Conversions[0].Target = "changed"
	clone.ScriptRefs()[0].Source = "inlined"

	assert.Equal(t, "hex-color", doc.Type.Conversions[0].Target)
	assert.Empty(t, doc.Type.Initializers[0].Script.Source)
}

func TestScriptRef_Inlined(t *testing.T) {
	t.Parallel()

	assert.False(t, (&ScriptRef{File: "a.lcs"}).Inlined())
	assert.True(t, (&ScriptRef{Source: "return 1"}).Inlined())
	assert.False(t, (&ScriptRef{}).Inlined())
}
