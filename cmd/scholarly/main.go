package main

import (
	"scholarly/cmd/cmd"
	"scholarly/internal/logger"
)

func main() {
	logger.Init()
	cmd.Execute()
}
