package main

import "github.com/mxmlextrema/mxmlcaot/cmd"

func main() {
	cmd.Execute()
}
