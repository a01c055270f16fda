package main

import "github.com/branched-services/go-chaincli/cmd/chaincli/cmd"

func main() {
	cmd.Execute()
}
