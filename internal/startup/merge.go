// Package startup combines parameters read from the parameters file with
// parameters given on the command line.
package startup

import "strings"

// Name returns the parameter name of a name=value entry, or "" for an
// entry without '='.
func Name(param string) string {
	i := strings.IndexByte(param, '=')
	if i <= 0 {
		return ""
	}
	return param[:i]
}

// Merge returns the file parameters followed by the command-line ones.
// A file entry is dropped when a command-line entry has the same name.
// Blank file entries are skipped. Entries without a name are positional
// and always kept in order.
func Merge(fileParams, cmdParams []string) []string {
	override := make(map[string]struct{}, len(cmdParams))
	for _, p := range cmdParams {
		if name := Name(p); name != "" {
			override[name] = struct{}{}
		}
	}

	merged := make([]string, 0, len(fileParams)+len(cmdParams))
	for _, p := range fileParams {
		if strings.TrimSpace(p) == "" {
			continue
		}
		if _, ok := override[Name(p)]; ok {
			continue
		}
		merged = append(merged, p)
	}
	return append(merged, cmdParams...)
}
