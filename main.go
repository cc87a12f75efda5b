package main

import "github.com/saral-ai/landing/cmd"

func main() {
	cmd.Execute()
}
