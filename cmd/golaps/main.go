package main

import "github.com/dbsmedya/golaps/cmd/golaps/cmd"

func main() {
	cmd.Execute()
}
