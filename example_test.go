package getconf_test

import (
	"fmt"
	"log"

	"github.com/cfgtools/getconf"
)

func Example() {
	config, err := getconf.New("exampleapp",
		getconf.WithFiles("/etc/exampleapp/settings.ini", "/etc/exampleapp/conf.d"),
		getconf.WithDefaults(map[string]map[string]string{
			"db": {"host": "localhost", "port": "5432"},
		}),
	)
	if err != nil {
		log.Fatal(err)
	}

	host, _ := config.GetString("db.host", "", "Database host")
	port, _ := config.GetInt("db.port", 0, "Database port")

	fmt.Printf("%s:%d\n", host, port)
	// Output: localhost:5432
}

func ExampleGetter_Template() {
	config, err := getconf.New("exampleapp")
	if err != nil {
		log.Fatal(err)
	}

	config.GetBool("debug", false, "Enable debug mode")
	config.GetString("db.host", "localhost", "Database host")

	fmt.Print(config.Template())
	// Output:
	// [DEFAULT]
	// # EXAMPLEAPP_DEBUG (bool) - Enable debug mode
	// # debug = off
	//
	// [db]
	// # EXAMPLEAPP_DB_HOST (string) - Database host
	// # host = localhost
}
