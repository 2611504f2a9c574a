package getconf

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Type hints recorded with each SeenKey and shown in the template.
const (
	typeString   = "string"
	typeList     = "list"
	typeBool     = "bool"
	typeInt      = "int"
	typeFloat    = "float"
	typeDuration = "duration"
	typePath     = "path"
	typeEnum     = "enum"
)

// GetString retrieves a raw string value. The default is returned verbatim
// when no source knows the key.
func (g *Getter) GetString(key, def, doc string) (string, error) {
	raw, found, err := g.resolve(key, doc, typeString, def)
	if err != nil {
		return "", err
	}
	if !found {
		return def, nil
	}
	return raw, nil
}

// GetList retrieves a value as a list: the raw string is split on the
// configured separator, entries are stripped of surrounding whitespace and
// empty entries are dropped. The default goes through the same splitting.
func (g *Getter) GetList(key, def, doc string) ([]string, error) {
	defItems := splitList(def, g.listSep)
	raw, found, err := g.resolve(key, doc, typeList, strings.Join(defItems, ","))
	if err != nil {
		return nil, err
	}
	if !found {
		return defItems, nil
	}
	return splitList(raw, g.listSep), nil
}

// GetBool retrieves a value as a boolean. The raw values on, true, yes
// and 1 (case-insensitive) are true; everything else, including garbage,
// is false. Bad input never fails.
func (g *Getter) GetBool(key string, def bool, doc string) (bool, error) {
	raw, found, err := g.resolve(key, doc, typeBool, formatBool(def))
	if err != nil {
		return false, err
	}
	if !found {
		return def, nil
	}
	return parseBool(raw), nil
}

// GetInt retrieves a value as an integer. A resolved value that does not
// parse fails with ErrBadValue, even when the default is a valid number.
func (g *Getter) GetInt(key string, def int, doc string) (int, error) {
	raw, found, err := g.resolve(key, doc, typeInt, strconv.Itoa(def))
	if err != nil {
		return 0, err
	}
	if !found {
		return def, nil
	}
	value, perr := strconv.Atoi(strings.TrimSpace(raw))
	if perr != nil {
		g.logger.Warn("invalid integer value",
			zap.String("key", key), zap.String("value", raw))
		return 0, fmt.Errorf("%w: key %s: invalid integer %q", ErrBadValue, key, raw)
	}
	return value, nil
}

// GetFloat retrieves a value as a float64.
func (g *Getter) GetFloat(key string, def float64, doc string) (float64, error) {
	raw, found, err := g.resolve(key, doc, typeFloat, strconv.FormatFloat(def, 'f', -1, 64))
	if err != nil {
		return 0, err
	}
	if !found {
		return def, nil
	}
	value, perr := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if perr != nil {
		g.logger.Warn("invalid float value",
			zap.String("key", key), zap.String("value", raw))
		return 0, fmt.Errorf("%w: key %s: invalid float %q", ErrBadValue, key, raw)
	}
	return value, nil
}

// GetDuration retrieves a value in the <number><unit> format, where the
// unit is exactly one of d, h, m or s and the number may be fractional:
// "42d" is 42 days, "0.5s" half a second. The default must use the same
// format ("" means no default); a malformed default fails with
// ErrInvalidDefault before any resolution is attempted.
func (g *Getter) GetDuration(key, def, doc string) (time.Duration, error) {
	var defValue time.Duration
	if def != "" {
		d, err := parseDuration(def)
		if err != nil {
			return 0, fmt.Errorf("%w: key %s: %v", ErrInvalidDefault, key, err)
		}
		defValue = d
	}
	raw, found, err := g.resolve(key, doc, typeDuration, def)
	if err != nil {
		return 0, err
	}
	if !found {
		return defValue, nil
	}
	value, perr := parseDuration(raw)
	if perr != nil {
		g.logger.Warn("invalid duration value",
			zap.String("key", key), zap.String("value", raw))
		return 0, fmt.Errorf("%w: key %s: %v", ErrBadValue, key, perr)
	}
	return value, nil
}

// GetPath retrieves a value as a filesystem path, expanding "~" and
// resolving to an absolute path. The default goes through the same
// expansion; "" means no default and is returned as-is.
func (g *Getter) GetPath(key, def, doc string) (string, error) {
	raw, found, err := g.resolve(key, doc, typePath, def)
	if err != nil {
		return "", err
	}
	if !found {
		raw = def
	}
	if raw == "" {
		return "", nil
	}
	path, perr := expandPath(raw)
	if perr != nil {
		g.logger.Warn("invalid path value",
			zap.String("key", key), zap.String("value", raw))
		return "", fmt.Errorf("%w: key %s: %v", ErrBadValue, key, perr)
	}
	return path, nil
}

// GetEnum retrieves a value constrained to a closed set of choices. The
// default must be "" or a member of choices; a resolved value outside the
// set fails with ErrBadValue.
func (g *Getter) GetEnum(key, def string, choices []string, doc string) (string, error) {
	if def != "" && !slices.Contains(choices, def) {
		return "", fmt.Errorf("%w: key %s: default %q not among %v",
			ErrInvalidDefault, key, def, choices)
	}
	raw, found, err := g.resolve(key, doc, typeEnum, def)
	if err != nil {
		return "", err
	}
	if !found {
		return def, nil
	}
	if !slices.Contains(choices, raw) {
		g.logger.Warn("invalid enum value",
			zap.String("key", key), zap.String("value", raw))
		return "", fmt.Errorf("%w: key %s: value %q not among %v",
			ErrBadValue, key, raw, choices)
	}
	return raw, nil
}

func splitList(raw, sep string) []string {
	items := make([]string, 0)
	for _, item := range strings.Split(raw, sep) {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "true", "yes", "1":
		return true
	}
	return false
}

func formatBool(value bool) string {
	if value {
		return "on"
	}
	return "off"
}

var durationUnits = map[byte]time.Duration{
	'd': 24 * time.Hour,
	'h': time.Hour,
	'm': time.Minute,
	's': time.Second,
}

// parseDuration parses the <number><unit> duration format. Exactly one
// trailing unit character is accepted; the remainder must parse as a
// (possibly fractional) number, so "1d2h" and "42f" are both rejected.
func parseDuration(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errors.New("empty duration")
	}
	unit, ok := durationUnits[raw[len(raw)-1]]
	if !ok {
		return 0, fmt.Errorf("unknown duration unit %q in %q", string(raw[len(raw)-1]), raw)
	}
	number := raw[:len(raw)-1]
	value, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration number %q in %q", number, raw)
	}
	return time.Duration(value * float64(unit)), nil
}
