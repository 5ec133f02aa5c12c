package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("starting")
	defer func() {
		os.Exit(3)
	}()
	os.Exit(1) // want `os.Exit call is forbidden in main function: os.Exit\(1\)`
}

func helper() {
	os.Exit(2)
}
