package main

import (
	"campus-events-api/core/logger"
	"campus-events-api/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
