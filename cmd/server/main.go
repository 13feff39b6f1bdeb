package main

import "github.com/eslsoft/jyutcollab/cmd"

func main() {
	cmd.Execute()
}
