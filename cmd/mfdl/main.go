package main

import "mfdl/cmd/handlers"

func main() {
	handlers.Execute()
}
