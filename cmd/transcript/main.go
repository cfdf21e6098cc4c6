package main

import "acl-research/cmd/transcript/cmd"

func main() {
	cmd.Execute()
}
