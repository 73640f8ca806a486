package main

import "woodfalls/cmd/woodfalls/root"

func main() {
	root.Execute()
}
