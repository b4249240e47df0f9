package emit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/chromabundle/internal/bundle"
	"github.com/vk/chromabundle/internal/ref"
	"github.com/vk/chromabundle/internal/schema"
	"github.com/vk/chromabundle/internal/store"
	"github.com/vk/chromabundle/internal/testutil"
)

func buildResult(t *testing.T) *bundle.Result {
	t.Helper()
	root := t.TempDir()

	testutil.WriteSchema(t, root, "type", "rgb-color",
		testutil.TypeDoc("rgb-color", [3]string{"$self", "hex-color", "to-hex.lcs"}),
		map[string]string{"to-hex.lcs": "return hex(r, g, b)"})
	testutil.WriteSchema(t, root, "type", "hex-color",
		testutil.TypeDoc("hex-color"), nil)
	testutil.WriteSchema(t, root, "function", "invert",
		testutil.FunctionDoc("invert", "invert.lcs", "rgb-color"),
		map[string]string{"invert.lcs": "return 255 - channel"})

	src := store.New(root)
	res, err := bundle.Selective(context.Background(), src,
		[]ref.Ref{{Kind: schema.KindFunction, Identifier: "invert", RawURI: "invert"}},
		"https://reg.example.com")
	require.NoError(t, err)
	return res
}

func TestWriteModule(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	res := buildResult(t)

	var buf bytes.Buffer
	require.NoError(t, WriteModule(ctx, &buf, "palette", res))
	out := buf.String()

	assert.Contains(t, out, "// Code generated by chromabundle. DO NOT EDIT.")
	assert.Contains(t, out, "package palette")
	assert.Contains(t, out, `import "github.com/vk/chromabundle/pkg/runtime"`)
	assert.Contains(t, out, "var Entries = []runtime.Entry{")
	assert.Contains(t, out, "func NewRuntime() *runtime.Config {")

	// One entry per resolved dependency.
	assert.Equal(t, len(res.ResolvedDependencies), strings.Count(out, "URI:"))
	for _, doc := range res.Documents {
		assert.Contains(t, out, fmt.Sprintf("URI:    %q", doc.URI))
	}
	// Inlined script bodies travel inside the quoted schema literals.
	assert.Contains(t, out, "return 255 - channel")
}

func TestWriteModule_DefaultPackage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteModule(context.Background(), &buf, "", buildResult(t)))
	assert.Contains(t, buf.String(), "package schemas")
}

func TestWriteRegistry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	root := t.TempDir()
	testutil.WriteSchema(t, root, "type", "rgb-color",
		testutil.TypeDoc("rgb-color", [3]string{"$self", "hex-color", "to-hex.lcs"}),
		map[string]string{"to-hex.lcs": "return hex(r, g, b)"})
	testutil.WriteSchema(t, root, "type", "hex-color", testutil.TypeDoc("hex-color"), nil)
	src := store.New(root)

	reg, err := bundle.BuildRegistry(ctx, src, src, "2.0.0", "")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteRegistry(ctx, &buf, reg))

	var decoded struct {
		Version  string            `json:"version"`
		Types    []json.RawMessage `json:"types"`
		Funcs    []json.RawMessage `json:"functions"`
		Metadata struct {
			TotalSchemas int    `json:"totalSchemas"`
			GeneratedAt  string `json:"generatedAt"`
		} `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "2.0.0", decoded.Version)
	assert.Len(t, decoded.Types, 2)
	assert.Empty(t, decoded.Funcs)
	assert.Equal(t, 2, decoded.Metadata.TotalSchemas)
	assert.NotEmpty(t, decoded.Metadata.GeneratedAt)
	assert.NotContains(t, buf.String(), `"file"`, "no file pointers may survive in the artifact")
}
