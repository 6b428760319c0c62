package main

import "github.com/Beastly713/sssolve/cmd"

func main() {
	cmd.Execute()
}
