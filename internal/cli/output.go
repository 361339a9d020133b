package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

type outputFormat string

const (
	formatText outputFormat = "text"
	formatJSON outputFormat = "json"
	formatYAML outputFormat = "yaml"
)

func (a *App) outputFormat() (outputFormat, error) {
	if a.flags.json {
		return formatJSON, nil
	}
	switch f := outputFormat(strings.ToLower(strings.TrimSpace(a.flags.format))); f {
	case "", formatText:
		return formatText, nil
	case formatJSON, formatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown --format %q (want text, json or yaml)", a.flags.format)
	}
}

// render writes v in the selected format. text is only called for the
// text format.
func (a *App) render(w io.Writer, v any, text func() string) error {
	format, err := a.outputFormat()
	if err != nil {
		return err
	}
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		_, err := fmt.Fprint(w, text())
		return err
	}
}
