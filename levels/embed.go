package levels

import (
	"embed"
	"io/fs"
	"sort"
	"strings"
)

//go:embed *.tmx
var FS embed.FS

// Names lists the embedded levels without their extension.
func Names() []string {
	matches, err := fs.Glob(FS, "*.tmx")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(m, ".tmx"))
	}
	sort.Strings(names)
	return names
}

// Path maps a level name to its file name inside FS.
func Path(name string) string {
	if strings.HasSuffix(name, ".tmx") {
		return name
	}
	return name + ".tmx"
}
