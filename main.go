package main

import "github.com/aegisedu/campus-portal/cmd"

func main() {
	cmd.Execute()
}
