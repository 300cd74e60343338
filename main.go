package main

import (
	"os"

	"github.com/scan-io-git/sarif-reporter/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
