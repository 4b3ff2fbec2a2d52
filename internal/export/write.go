package export

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// Format names an output encoding
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnknownFormat is returned for an unsupported format name
var ErrUnknownFormat = errors.New("unknown format")

// Formats lists supported formats
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML, FormatTOML}
}

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Write renders catalog to w
func Write(w io.Writer, format Format, catalog Catalog) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case FormatText:
		return writeText(w, catalog)
	case FormatJSON:
		data, err = sonic.MarshalIndent(catalog, "", "  ")
		data = append(data, '\n')
	case FormatYAML:
		data, err = yaml.Marshal(catalog)
	case FormatTOML:
		data, err = toml.Marshal(catalog)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", format, err)
	}
	return nil
}

// writeText renders one row per record
func writeText(w io.Writer, catalog Catalog) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tGROUP\tTYPE\tSPAWNABLE\tPROPERTIES\tFUNCTIONS\tCAPABILITIES")
	for _, r := range catalog.Records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			r.Name, r.Group, r.Type,
			strconv.FormatBool(r.Spawnable),
			len(r.Properties), len(r.Functions),
			strings.Join(r.Capabilities, ","))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write text: %w", err)
	}
	return nil
}

// WriteRecord renders one record in detail as text
func WriteRecord(w io.Writer, info RecordInfo) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Name:\t%s\n", info.Name)
	fmt.Fprintf(tw, "Title:\t%s\n", info.Title)
	fmt.Fprintf(tw, "Group:\t%s\n", info.Group)
	fmt.Fprintf(tw, "Help:\t%s\n", info.Help)
	fmt.Fprintf(tw, "Type:\t%s\n", info.Type)
	fmt.Fprintf(tw, "ID:\t%s\n", info.ID)
	fmt.Fprintf(tw, "Spawnable:\t%t\n", info.Spawnable)
	if len(info.Capabilities) > 0 {
		fmt.Fprintf(tw, "Capabilities:\t%s\n", strings.Join(info.Capabilities, ", "))
	}
	for _, p := range info.Properties {
		fmt.Fprintf(tw, "  property %s\t%s\t%s\n", p.Name, p.Type, memberFlags(p))
	}
	for _, f := range info.Functions {
		fmt.Fprintf(tw, "  function %s\t(%s)\t%s\n", f.Name, strings.Join(f.Params, ", "), memberFlags(f))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

func memberFlags(m MemberInfo) string {
	var flags []string
	if m.Static {
		flags = append(flags, "static")
	}
	if m.Editable {
		flags = append(flags, "editable")
	}
	flags = append(flags, m.Capabilities...)
	return strings.Join(flags, " ")
}
