package main

import "catalog-aggregator/cmd"

func main() {
	cmd.Execute()
}
