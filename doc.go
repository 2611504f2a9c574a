// Package getconf resolves configuration values for a running process by
// consulting, in a fixed priority order, environment variables, INI-style
// configuration files and an in-memory default structure.
//
// Values are addressed by dotted keys of the form "section.entry"; a bare
// entry is looked up in the DEFAULT section. Each source is a Finder; the
// Getter tries its finders in order and falls back to the caller-supplied
// default when none of them knows the key.
//
// Quick Start:
//
//	config, err := getconf.New("myapp",
//	    getconf.WithFiles("/etc/myapp/settings.ini", "~/.myapp.d"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	host, _ := config.GetString("db.host", "localhost", "Database host")
//	port, _ := config.GetInt("db.port", 5432, "Database port")
//
// With the above Getter, a call to GetString("db.host", ...) looks at:
//  1. The environment variable MYAPP_DB_HOST
//  2. Key "host" of section [db] in the file named by MYAPP_CONFIG, if set
//  3. Key "host" of section [db] in ~/.myapp.d/* (sorted by name) and
//     /etc/myapp/settings.ini
//  4. The provided default
//
// Directory paths are expanded to dir/*, glob patterns to the matching
// files sorted by name; within one expansion later files override earlier
// ones, so 99_override.ini beats 10_base.ini. Missing files and empty
// globs are silently skipped.
//
// File discovery and parsing happen once, at construction. All lookups
// afterwards are in-memory. Build a new Getter to pick up changed files or
// environment variables; there is no watch or reload mechanism.
//
// Every key ever requested is recorded together with its documentation
// string, default and type, so Template can render a commented skeleton of
// the full configuration surface.
package getconf
