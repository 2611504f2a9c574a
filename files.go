package getconf

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// FileFinder resolves keys against a set of configuration files discovered
// from an ordered list of path specifications. Each spec may be a file, a
// directory (expanded to dir/*) or a glob pattern. Specs are expanded at
// construction; all later lookups are in-memory.
//
// Within one expanded spec files are parsed in lexicographic order, and
// later files override identically-named (section, entry) pairs from
// earlier ones, so 99_override.ini takes precedence over 10_base.ini in
// the same directory. Missing files and empty globs contribute nothing.
type FileFinder struct {
	searchFiles []string
	foundFiles  []string
	values      map[string]map[string]string
}

// NewFileFinder expands and parses the given path specifications.
// Empty specs are skipped; "~" is expanded to the user home directory.
// Syntax errors in files that do exist are reported; files that do not
// exist are not.
func NewFileFinder(specs []string) (*FileFinder, error) {
	f := &FileFinder{values: make(map[string]map[string]string)}

	for _, spec := range specs {
		if spec == "" {
			continue
		}
		path, err := expandPath(spec)
		if err != nil {
			return nil, fmt.Errorf("invalid config path %q: %w", spec, err)
		}
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			path = filepath.Join(path, "*")
		}
		f.searchFiles = append(f.searchFiles, path)
	}

	var parseList []string
	for _, pattern := range f.searchFiles {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid config pattern %q: %w", pattern, err)
		}
		// Sorted so that within one spec the last file by name wins.
		sort.Strings(matches)
		parseList = append(parseList, matches...)
	}

	for _, path := range parseList {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		if err := f.parseFile(path); err != nil {
			return nil, err
		}
		f.foundFiles = append(f.foundFiles, path)
	}

	return f, nil
}

// SearchFiles returns the expanded path specifications, in input order.
func (f *FileFinder) SearchFiles() []string {
	return append([]string(nil), f.searchFiles...)
}

// FoundFiles returns the files actually parsed, least important first.
func (f *FileFinder) FoundFiles() []string {
	return append([]string(nil), f.foundFiles...)
}

func (f *FileFinder) Find(key string) (string, error) {
	section, entry := SplitSectionKey(key)
	if value, ok := f.values[section][entry]; ok {
		return value, nil
	}
	return "", ErrNotFound
}

// parseFile merges one file into the accumulated values, overriding
// entries parsed from earlier files. The format is chosen by extension;
// anything that is not TOML or YAML parses as INI.
func (f *FileFinder) parseFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return f.mergeDocument(path, data, toml.Unmarshal)
	case ".yaml", ".yml":
		return f.mergeDocument(path, data, yaml.Unmarshal)
	default:
		return f.mergeINI(path, data)
	}
}

func (f *FileFinder) mergeINI(path string, data []byte) error {
	file, err := ini.LoadSources(ini.LoadOptions{}, data)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}
	for _, section := range file.Sections() {
		for entry, value := range section.KeysHash() {
			f.set(section.Name(), entry, value)
		}
	}
	return nil
}

// mergeDocument maps a parsed TOML or YAML document onto the two-level
// (section, entry) space: top-level tables become sections, top-level
// scalars land in DEFAULT, deeper nesting flattens into dotted entry
// names.
func (f *FileFinder) mergeDocument(path string, data []byte, unmarshal func([]byte, any) error) error {
	doc := make(map[string]any)
	if err := unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}
	for name, value := range doc {
		if table, ok := value.(map[string]any); ok {
			for entry, v := range flattenEntries(table, "") {
				f.set(name, entry, v)
			}
			continue
		}
		f.set(DefaultSection, name, stringifyValue(value))
	}
	return nil
}

func (f *FileFinder) set(section, entry, value string) {
	m, ok := f.values[section]
	if !ok {
		m = make(map[string]string)
		f.values[section] = m
	}
	m[entry] = value
}

// flattenEntries converts a nested map into flat entry names with
// dot-notation paths, stringifying leaf values.
func flattenEntries(nested map[string]any, prefix string) map[string]string {
	flat := make(map[string]string)
	for key, value := range nested {
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}
		if sub, ok := value.(map[string]any); ok {
			for subName, subValue := range flattenEntries(sub, name) {
				flat[subName] = subValue
			}
			continue
		}
		flat[name] = stringifyValue(value)
	}
	return flat
}

func stringifyValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = stringifyValue(item)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprintf("%v", v)
	}
}

// expandPath resolves "~" shorthand and makes the path absolute.
func expandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot expand %q: %w", path, err)
		}
		path = filepath.Join(home, path[1:])
	}
	return filepath.Abs(path)
}
