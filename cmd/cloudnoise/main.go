package main

import "github.com/MeKo-Tech/cloudnoise/internal/cmd"

func main() {
	cmd.Execute()
}
