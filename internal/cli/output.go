package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type dirParams struct {
	Dir    string   `json:"dir" yaml:"dir"`
	Params []string `json:"params" yaml:"params"`
}

func validFormat(format string) bool {
	switch format {
	case "text", "json", "yaml":
		return true
	}
	return false
}

func writeParams(w io.Writer, format string, results []dirParams) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return err
		}
		return enc.Close()
	}

	for _, r := range results {
		if len(results) > 1 {
			fmt.Fprintf(w, "# %s\n", r.Dir)
		}
		for _, p := range r.Params {
			fmt.Fprintln(w, p)
		}
	}
	return nil
}
