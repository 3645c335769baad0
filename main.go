package main

import "github.com/shouni/gesture-gen-kit/cmd"

func main() {
	cmd.Execute()
}
