package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// printResult writes the envelope's data, and meta when present, in the
// requested format.
func printResult(w io.Writer, format string, env *envelope) error {
	if len(env.Meta) == 0 {
		return printValue(w, format, env.Data)
	}

	return printValue(w, format, map[string]json.RawMessage{
		"data": env.Data,
		"meta": env.Meta,
	})
}

func printValue(w io.Writer, format string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}

	if format == "yaml" {
		// Decode into generic values so YAML keys follow the API field names.
		var generic any
		if err := json.Unmarshal(payload, &generic); err != nil {
			return err
		}
		out, err := yaml.Marshal(generic)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, payload, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err = buf.WriteTo(w)
	return err
}

func printMessage(w io.Writer, env *envelope) {
	fmt.Fprintln(w, env.Message)
}
