package getconf

import (
	"os"
	"path/filepath"
	"strings"
)

// NoNamespace disables the namespace segment in derived environment
// variable names: keys map to SECTION_ENTRY instead of NS_SECTION_ENTRY.
const NoNamespace = ""

// DefaultSection is the section bare entries are looked up in.
const DefaultSection = "DEFAULT"

// Finder resolves a single dotted key to a raw string value. A found
// empty string is a successful find; ErrNotFound signals that the source
// does not know the key at all.
type Finder interface {
	Find(key string) (string, error)
}

// SplitSectionKey splits a dotted key into its section and entry parts.
// The split happens on the first dot only; further dots belong to the
// entry name. A key without a dot belongs to DefaultSection.
func SplitSectionKey(key string) (section, entry string) {
	if i := strings.Index(key, "."); i >= 0 {
		return key[:i], key[i+1:]
	}
	return DefaultSection, key
}

// deriveEnvKey maps a dotted key to an environment variable name:
// upper-cased namespace, section and entry joined by underscores, with
// dashes replaced by underscores. The namespace segment is omitted under
// NoNamespace, the section segment when the key has no section.
func deriveEnvKey(namespace, key string) string {
	parts := make([]string, 0, 3)
	if namespace != NoNamespace {
		parts = append(parts, namespace)
	}
	if i := strings.Index(key, "."); i >= 0 {
		parts = append(parts, key[:i], key[i+1:])
	} else {
		parts = append(parts, key)
	}
	name := strings.ToUpper(strings.Join(parts, "_"))
	return strings.ReplaceAll(name, "-", "_")
}

// EnvFinder resolves keys against the process environment.
type EnvFinder struct {
	namespace string
}

// NewEnvFinder creates a finder deriving variable names under the given
// namespace (or NoNamespace).
func NewEnvFinder(namespace string) *EnvFinder {
	return &EnvFinder{namespace: namespace}
}

// EnvKey returns the environment variable name the finder derives for key.
func (f *EnvFinder) EnvKey(key string) string {
	return deriveEnvKey(f.namespace, key)
}

func (f *EnvFinder) Find(key string) (string, error) {
	if value, ok := os.LookupEnv(f.EnvKey(key)); ok {
		return value, nil
	}
	return "", ErrNotFound
}

// MapFinder resolves keys against an in-memory two-level mapping
// section -> entry -> value. The mapping is never mutated.
type MapFinder struct {
	data map[string]map[string]string
}

func NewMapFinder(data map[string]map[string]string) *MapFinder {
	return &MapFinder{data: data}
}

func (f *MapFinder) Find(key string) (string, error) {
	section, entry := SplitSectionKey(key)
	if value, ok := f.data[section][entry]; ok {
		return value, nil
	}
	return "", ErrNotFound
}

// FileContentFinder resolves a key to the content of the file named after
// it inside a directory, the layout used by docker secrets and systemd
// credentials. Files are read as UTF-8.
type FileContentFinder struct {
	dir string
}

func NewFileContentFinder(dir string) *FileContentFinder {
	return &FileContentFinder{dir: dir}
}

func (f *FileContentFinder) Find(key string) (string, error) {
	path := filepath.Join(f.dir, key)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", ErrNotFound
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
