package export_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/catalog/internal/export"
	"github.com/GriffinCanCode/catalog/internal/library"
)

type Turret struct {
	Range float64 `lib:"range"`
}

func (t *Turret) Aim(x, y float64) {}

var rotation = 90

func catalog(t *testing.T) export.Catalog {
	t.Helper()
	host := library.NewHost()
	host.Module("example.com/defense", library.PackagePath).Add(reflect.TypeOf(Turret{}),
		library.Tag{Name: "turret", Group: "defense"},
		library.With(&library.Singleton{}),
		library.Method("Aim"),
		library.Static("rotation", &rotation),
	)
	r := library.NewRegistry(library.Config{Host: host})
	r.Initialize()
	return export.Snapshot(r.All())
}

func TestDescribe(t *testing.T) {
	c := catalog(t)
	require.Len(t, c.Records, 2)

	turret := c.Records[1]
	assert.Equal(t, "turret", turret.Name)
	assert.Equal(t, "defense", turret.Group)
	assert.Equal(t, "export_test.Turret", turret.Type)
	assert.Equal(t, []string{"library.Singleton"}, turret.Capabilities)
	assert.Len(t, turret.ID, 36)

	require.Len(t, turret.Properties, 2)
	assert.Equal(t, "range", turret.Properties[0].Name)
	assert.Equal(t, "float64", turret.Properties[0].Type)
	assert.True(t, turret.Properties[1].Static)

	require.Len(t, turret.Functions, 1)
	assert.Equal(t, []string{"float64", "float64"}, turret.Functions[0].Params)
	assert.False(t, turret.Functions[0].Static)
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, export.FormatText, catalog(t)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.Contains(t, lines[2], "turret")
	assert.Contains(t, lines[2], "library.Singleton")
}

func TestWriteEncodings(t *testing.T) {
	want := catalog(t)

	decoders := map[export.Format]func([]byte, any) error{
		export.FormatJSON: sonic.Unmarshal,
		export.FormatYAML: yaml.Unmarshal,
		export.FormatTOML: toml.Unmarshal,
	}
	for format, decode := range decoders {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, export.Write(&buf, format, want))

			var got export.Catalog
			require.NoError(t, decode(buf.Bytes(), &got))
			require.Len(t, got.Records, len(want.Records))
			assert.Equal(t, want.Records[1].Name, got.Records[1].Name)
			assert.Equal(t, want.Records[1].ID, got.Records[1].ID)
		})
	}
}

func TestWriteRecord(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteRecord(&buf, catalog(t).Records[1]))

	out := buf.String()
	assert.Contains(t, out, "Name:")
	assert.Contains(t, out, "property range")
	assert.Contains(t, out, "function Aim")
	assert.Contains(t, out, "static editable")
}

func TestParseFormat(t *testing.T) {
	f, err := export.ParseFormat(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, export.FormatJSON, f)

	_, err = export.ParseFormat("xml")
	assert.ErrorIs(t, err, export.ErrUnknownFormat)

	assert.ErrorIs(t, export.Write(&bytes.Buffer{}, "xml", export.Catalog{}), export.ErrUnknownFormat)
}
