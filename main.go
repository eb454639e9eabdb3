package main

import "github.com/Norgate-AV/swiftdriver/cmd"

func main() {
	cmd.Execute()
}
