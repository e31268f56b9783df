package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type parameter struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{" JSON ", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"csv", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrintTable(t *testing.T) {
	table := NewTable("name", "value")
	table.AddRow("threads_read", "4")
	table.AddRow("library", "badger")

	var buf bytes.Buffer
	require.NoError(t, PrintTable(&buf, table))

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "VALUE")
	assert.Contains(t, out, "threads_read")
	assert.Contains(t, out, "badger")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("threads_read")), bytes.Index(buf.Bytes(), []byte("library")))
}

func TestPrintPairs(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintPairs(&buf, [][2]string{{"Run", "abc"}, {"Library", "adjacency"}}))

	out := buf.String()
	assert.Contains(t, out, "Run")
	assert.Contains(t, out, "adjacency")
	assert.Contains(t, out, ":")
}

func TestPrinter(t *testing.T) {
	params := []parameter{{Name: "seed", Value: "5051789"}}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewPrinter(&buf, FormatJSON).Print(params))

		var decoded []parameter
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, params, decoded)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewPrinter(&buf, FormatYAML).Print(params))

		var decoded []parameter
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, params, decoded)
	})

	t.Run("table uses renderer", func(t *testing.T) {
		table := NewTable("name")
		table.AddRow("seed")

		var buf bytes.Buffer
		require.NoError(t, NewPrinter(&buf, FormatTable).Print(table))
		assert.Contains(t, buf.String(), "NAME")
	})

	t.Run("table falls back to yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewPrinter(&buf, FormatTable).Print(params))
		assert.Contains(t, buf.String(), "name: seed")
	})

	t.Run("unknown format", func(t *testing.T) {
		assert.Error(t, NewPrinter(&bytes.Buffer{}, Format("xml")).Print(params))
	})
}
