package main

import "github.com/securewave/securewave_backend/cmd"

func main() {
	cmd.Execute()
}
