package main

import "swim-admin/cmd"

func main() {
	cmd.Execute()
}
