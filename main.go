package main

import "hotel-deals/cmd"

func main() {
	cmd.Execute()
}
