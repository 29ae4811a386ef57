package main

import "github.com/marcelofeitoza/crowd-estate/cli/crowdestate/cmd"

func main() {
	cmd.Execute()
}
