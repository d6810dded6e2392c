package main

import "github.com/myaiRhys/Lifer/cmd/lifer/root"

func main() {
	root.Execute()
}
