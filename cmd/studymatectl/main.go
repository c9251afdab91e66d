package main

import "studymate/cmd/studymatectl/cmd"

func main() {
	cmd.Execute()
}
