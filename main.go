package main

import (
	"github.com/hmaulana/maintenance-management/cmd"
)

func main() {
	cmd.Execute()
}
