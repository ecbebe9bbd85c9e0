// The main package for the sitegrade executable.
package main

import (
	"github.com/sitegrade/sitegrade/cmd"
)

func main() {
	cmd.Execute()
}
