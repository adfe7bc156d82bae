// Command estatemap searches the Karnataka RERA project register and shows
// matching projects on a map.
package main

import (
	"os"

	"github.com/custodia-labs/estatemap/internal/adapters/driving/cli"
)

func main() {
	cli.SetServiceFactory(buildServices)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
