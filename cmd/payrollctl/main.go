package main

import (
	"os"
)

func main() {
	e := newEnv()
	err := newRootCmd(e).Execute()
	e.close()
	if err != nil {
		os.Exit(1)
	}
}
