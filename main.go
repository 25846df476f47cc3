package main

import "github.com/josephlewis42/histsh/cmd"

func main() {
	cmd.Execute()
}
