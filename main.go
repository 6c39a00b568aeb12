package main

import (
	"github.com/Dbillionaer/polygonmcp/cmd"
)

func main() {
	cmd.Execute()
}
