package main

import "github.com/Manu343726/regc/cmd"

func main() {
	cmd.Execute()
}
