package main

import "github.com/teamtotals/teamtotals/cmd"

func main() {
	cmd.Execute()
}
