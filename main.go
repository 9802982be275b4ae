package main

import "github.com/theirongolddev/finportal/cmd"

func main() {
	cmd.Execute()
}
