package main

import "github.com/Anirban2958/clapgrow/cmd"

func main() {
	cmd.Execute()
}
