// Command carta manages a catalog of restaurants and dishes.
package main

import (
	"os"

	"github.com/mesh-intelligence/carta/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
