package main

import "acl-research/cmd/acl/cmd"

func main() {
	cmd.Execute()
}
