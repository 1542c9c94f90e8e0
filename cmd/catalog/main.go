package main

import "github.com/composersite/catalog/cmd"

func main() {
	cmd.Execute()
}
