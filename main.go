package main

import "github.com/wentf9/mesh-wizard/cmd"

func main() {
	cmd.Execute()
}
