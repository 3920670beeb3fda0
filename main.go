package main

import "contract-manager/cmd"

func main() {
	cmd.Execute()
}
