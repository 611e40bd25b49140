package main

import (
	"voxnote/cmd/handlers"
	"voxnote/internal/logger"
)

func main() {
	logger.Init()
	handlers.Execute()
}
