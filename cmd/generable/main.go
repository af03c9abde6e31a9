package main

import "github.com/reoring/generable/cmd/generable/cmd"

func main() {
	cmd.Execute()
}
