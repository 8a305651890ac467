package main

import "github.com/guardhq/workforce-management/cmd"

func main() {
	cmd.Execute()
}
