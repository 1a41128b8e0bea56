package main

import "github.com/KaramelBytes/catalogscope/cmd"

func main() {
	cmd.Execute()
}
