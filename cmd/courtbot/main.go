package main

import "github.com/rlucioni/courtbot/cmd"

func main() {
	cmd.Execute()
}
