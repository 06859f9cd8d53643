package main

import "carpick/cmd"

func main() {
	cmd.Execute()
}
