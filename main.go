package main

import "github.com/Yates-Labs/grompt/cmd"

func main() {
	cmd.Execute()
}
