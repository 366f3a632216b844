package main

import "github.com/Goutamdhanani/30-days-challenge/cmd/thirty/root"

func main() {
	root.Execute()
}
