package main

import "github.com/m04kA/SMC-TurnosService/internal/cli"

func main() {
	cli.Execute()
}
