package getconf_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfgtools/getconf"
)

func TestGetList(t *testing.T) {
	t.Run("Empty Default", func(t *testing.T) {
		config := newTestGetter(t, nil)

		value, err := config.GetList("app.tags", "", "")
		require.NoError(t, err)
		assert.Empty(t, value)
	})

	t.Run("Dirty Default Is Cleaned", func(t *testing.T) {
		config := newTestGetter(t, nil)

		value, err := config.GetList("app.tags", "x, ,foo , bar,,", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"x", "foo", "bar"}, value)
	})

	t.Run("Resolved Value Is Cleaned", func(t *testing.T) {
		config := newTestGetter(t, map[string]map[string]string{
			"app": {"tags": " foo,  bar ,baz,,"},
		})

		value, err := config.GetList("app.tags", "", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"foo", "bar", "baz"}, value)
	})

	t.Run("Custom Separator", func(t *testing.T) {
		config := newTestGetter(t,
			map[string]map[string]string{"app": {"tags": "foo; bar;baz"}},
			getconf.WithListSeparator(";"),
		)

		value, err := config.GetList("app.tags", "", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"foo", "bar", "baz"}, value)
	})
}

func TestGetBool(t *testing.T) {
	truthy := []string{"on", "ON", "yes", "Yes", "true", "TRUE", "1"}
	for _, raw := range truthy {
		config := newTestGetter(t, map[string]map[string]string{"app": {"flag": raw}})

		value, err := config.GetBool("app.flag", false, "")
		require.NoError(t, err)
		assert.True(t, value, "raw %q", raw)
	}

	falsy := []string{"off", "no", "false", "0", "2", "whatever", ""}
	for _, raw := range falsy {
		config := newTestGetter(t, map[string]map[string]string{"app": {"flag": raw}})

		// Bad boolean input never raises, it is simply false.
		value, err := config.GetBool("app.flag", true, "")
		require.NoError(t, err)
		assert.False(t, value, "raw %q", raw)
	}

	t.Run("Default", func(t *testing.T) {
		config := newTestGetter(t, nil)

		value, err := config.GetBool("app.flag", true, "")
		require.NoError(t, err)
		assert.True(t, value)
	})
}

func TestGetInt(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		config := newTestGetter(t, map[string]map[string]string{"db": {"port": " 5432 "}})

		value, err := config.GetInt("db.port", 0, "")
		require.NoError(t, err)
		assert.Equal(t, 5432, value)
	})

	t.Run("Default", func(t *testing.T) {
		config := newTestGetter(t, nil)

		value, err := config.GetInt("db.port", 5432, "")
		require.NoError(t, err)
		assert.Equal(t, 5432, value)
	})

	t.Run("Bad Value Fails Even With Valid Default", func(t *testing.T) {
		config := newTestGetter(t, map[string]map[string]string{"db": {"port": "not-a-number"}})

		_, err := config.GetInt("db.port", 5432, "")
		assert.ErrorIs(t, err, getconf.ErrBadValue)
		assert.Contains(t, err.Error(), "not-a-number")
	})
}

func TestGetFloat(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		config := newTestGetter(t, map[string]map[string]string{"app": {"ratio": "0.75"}})

		value, err := config.GetFloat("app.ratio", 0, "")
		require.NoError(t, err)
		assert.Equal(t, 0.75, value)
	})

	t.Run("Bad Value", func(t *testing.T) {
		config := newTestGetter(t, map[string]map[string]string{"app": {"ratio": "three"}})

		_, err := config.GetFloat("app.ratio", 1.0, "")
		assert.ErrorIs(t, err, getconf.ErrBadValue)
	})
}

func TestGetDuration(t *testing.T) {
	t.Run("Units", func(t *testing.T) {
		tests := map[string]time.Duration{
			"42d":  42 * 24 * time.Hour,
			"2h":   2 * time.Hour,
			"15m":  15 * time.Minute,
			"0.5s": 500 * time.Millisecond,
			"0d":   0,
		}
		for raw, want := range tests {
			config := newTestGetter(t, map[string]map[string]string{"app": {"ttl": raw}})

			value, err := config.GetDuration("app.ttl", "", "")
			require.NoError(t, err, "raw %q", raw)
			assert.Equal(t, want, value, "raw %q", raw)
		}
	})

	t.Run("Bad Values", func(t *testing.T) {
		for _, raw := range []string{"1d2h", "42f", "42", "d", ""} {
			config := newTestGetter(t, map[string]map[string]string{"app": {"ttl": raw}})

			_, err := config.GetDuration("app.ttl", "1h", "")
			assert.ErrorIs(t, err, getconf.ErrBadValue, "raw %q", raw)
		}
	})

	t.Run("Default", func(t *testing.T) {
		config := newTestGetter(t, nil)

		value, err := config.GetDuration("app.ttl", "90m", "")
		require.NoError(t, err)
		assert.Equal(t, 90*time.Minute, value)

		value, err = config.GetDuration("app.other", "", "")
		require.NoError(t, err)
		assert.Equal(t, time.Duration(0), value)
	})

	t.Run("Bad Default Fails Before Resolution", func(t *testing.T) {
		config := newTestGetter(t, map[string]map[string]string{"app": {"ttl": "1h"}})

		_, err := config.GetDuration("app.ttl", "42f", "")
		assert.ErrorIs(t, err, getconf.ErrInvalidDefault)
		assert.Empty(t, config.ListKeys())
	})
}

func TestGetPath(t *testing.T) {
	t.Run("Absolute", func(t *testing.T) {
		config := newTestGetter(t, map[string]map[string]string{"app": {"data": "/var/lib/app"}})

		value, err := config.GetPath("app.data", "", "")
		require.NoError(t, err)
		assert.Equal(t, "/var/lib/app", value)
	})

	t.Run("Home Expansion", func(t *testing.T) {
		t.Setenv("HOME", "/home/tester")
		config := newTestGetter(t, map[string]map[string]string{"app": {"data": "~/data"}})

		value, err := config.GetPath("app.data", "", "")
		require.NoError(t, err)
		assert.Equal(t, "/home/tester/data", value)
	})

	t.Run("Default Is Expanded Too", func(t *testing.T) {
		t.Setenv("HOME", "/home/tester")
		config := newTestGetter(t, nil)

		value, err := config.GetPath("app.data", "~/fallback", "")
		require.NoError(t, err)
		assert.Equal(t, "/home/tester/fallback", value)
	})

	t.Run("No Default", func(t *testing.T) {
		config := newTestGetter(t, nil)

		value, err := config.GetPath("app.data", "", "")
		require.NoError(t, err)
		assert.Equal(t, "", value)
	})
}

func TestGetEnum(t *testing.T) {
	choices := []string{"debug", "info", "warn", "error"}

	t.Run("Member", func(t *testing.T) {
		config := newTestGetter(t, map[string]map[string]string{"log": {"level": "warn"}})

		value, err := config.GetEnum("log.level", "info", choices, "")
		require.NoError(t, err)
		assert.Equal(t, "warn", value)
	})

	t.Run("Default", func(t *testing.T) {
		config := newTestGetter(t, nil)

		value, err := config.GetEnum("log.level", "info", choices, "")
		require.NoError(t, err)
		assert.Equal(t, "info", value)
	})

	t.Run("Non-Member Value", func(t *testing.T) {
		config := newTestGetter(t, map[string]map[string]string{"log": {"level": "loud"}})

		_, err := config.GetEnum("log.level", "info", choices, "")
		assert.ErrorIs(t, err, getconf.ErrBadValue)
	})

	t.Run("Non-Member Default Fails Before Resolution", func(t *testing.T) {
		config := newTestGetter(t, map[string]map[string]string{"log": {"level": "warn"}})

		_, err := config.GetEnum("log.level", "loud", choices, "")
		assert.ErrorIs(t, err, getconf.ErrInvalidDefault)
		assert.Empty(t, config.ListKeys())
	})
}
