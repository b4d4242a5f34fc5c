package main

import "experience-manager/cmd"

func main() {
	cmd.Execute()
}
