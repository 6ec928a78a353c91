// Command tasktabs shows Taskwarrior reports as clickable terminal tabs.
package main

import (
	"os"

	"github.com/bma-d/tasktabs/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
