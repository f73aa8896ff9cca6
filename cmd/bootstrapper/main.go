package main

import "github.com/oshokin/bootstrapper/cmd/bootstrapper/cmd"

func main() {
	cmd.Execute()
}
