package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	yaml := `
root:
  id: top
  model: Group
  fields:
    - name: children
      type: MFNode
      nodes:
        - id: a
          model: PointSet
          alias: b
          fields:
            - {name: point, type: MFVec3f, value: ["0 0 0", "1 0 0"]}
            - {name: size, type: SFFloat, value: 2, is: b.size}
            - name: color
              type: SFColor
              is: {node: b, parameter: color}
`

	f, err := Parse([]byte(yaml))
	require.NoError(t, err)
	require.NotNil(t, f.Root)

	assert.Equal(t, CurrentVersion, f.Version)
	assert.Equal(t, "top", f.Root.ID)
	require.Len(t, f.Root.Fields, 1)
	require.Len(t, f.Root.Fields[0].Nodes, 1)

	a := f.Root.Fields[0].Nodes[0]
	assert.Equal(t, "b", a.Alias)
	require.Len(t, a.Fields, 3)

	assert.Equal(t, Items{"0 0 0", "1 0 0"}, a.Fields[0].Value)
	assert.Equal(t, Items{"2"}, a.Fields[1].Value)
	assert.Equal(t, &FieldRef{Node: "b", Field: "size"}, a.Fields[1].Is)
	assert.Equal(t, &FieldRef{Node: "b", Field: "color", Parameter: true}, a.Fields[2].Is)
}

func TestParseRejectsMalformedReferences(t *testing.T) {
	tests := []struct {
		name string
		is   string
	}{
		{name: "no dot", is: "paint"},
		{name: "empty field", is: "paint."},
		{name: "no node", is: "{field: baseColor}"},
		{name: "both kinds", is: "{node: paint, field: a, parameter: b}"},
		{name: "neither kind", is: "{node: paint}"},
		{name: "sequence", is: "[paint, baseColor]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			yaml := "root:\n  model: Group\n  fields:\n    - {name: a, type: SFBool, is: " + tt.is + "}\n"

			_, err := Parse([]byte(yaml))
			require.Error(t, err)
		})
	}
}

func TestParseRejectsNestedValues(t *testing.T) {
	_, err := Parse([]byte("root:\n  model: Group\n  fields:\n    - {name: a, type: MFInt32, value: [[1]]}\n"))
	require.Error(t, err)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestItemsMarshal(t *testing.T) {
	single, err := Items{"1 0 0"}.MarshalYAML()
	require.NoError(t, err)
	assert.Equal(t, "1 0 0", single)

	many, err := Items{"a", "b"}.MarshalYAML()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, many)
}

func TestFieldRefMarshal(t *testing.T) {
	short, err := FieldRef{Node: "paint", Field: "baseColor"}.MarshalYAML()
	require.NoError(t, err)
	assert.Equal(t, "paint.baseColor", short)

	long, err := FieldRef{Node: "robot", Field: "name", Parameter: true}.MarshalYAML()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"node": "robot", "parameter": "name"}, long)
}

func TestWriteFileRoundTrip(t *testing.T) {
	doc, err := Open("testdata/robot.yaml", DecodeOptions{})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "robot.yaml")
	require.NoError(t, WriteFile(doc, path))

	again, err := Open(path, DecodeOptions{})
	require.NoError(t, err)

	assert.Equal(t, doc.Graph.Len(), again.Graph.Len())
	assert.Equal(t, doc.Labels, again.Labels)
	assert.Equal(t, doc.Visibility.Nodes(), again.Visibility.Nodes())

	first, err := Encode(doc)
	require.NoError(t, err)
	second, err := Encode(again)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}
