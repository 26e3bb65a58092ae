package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fulldump/goconfig"

	"github.com/anytable/anytable/bootstrap"
	"github.com/anytable/anytable/configuration"
)

var VERSION = "dev"

var banner = `
   ___           ______     __   __
  / _ | ___ __ _/_  __/__ _/ /  / /__
 / __ |/ _ \/ // // / / _ ` + "`" + `/ _ \/ / -_)
/_/ |_/_//_/\_, //_/  \_,_/_.__/_/\__/
           /___/         version ` + VERSION + `
`

func main() {

	c := configuration.Default()
	goconfig.Read(&c)

	if c.Version {
		fmt.Println("Version:", VERSION)
		return
	}

	if c.ShowBanner {
		fmt.Println(banner)
	}

	if c.ShowConfig {
		e := json.NewEncoder(os.Stdout)
		e.SetIndent("", "    ")
		e.Encode(c)
	}

	bootstrap.VERSION = VERSION

	start, _ := bootstrap.Bootstrap(&c)

	start()
}
