package config

import (
	"os"
	"strconv"
)

type ServerConfig struct {
	Port        int
	ServiceName string
}

func NewServerConfig() *ServerConfig {
	port, err := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if err != nil {
		port = 8082
	}
	return &ServerConfig{
		Port:        port,
		ServiceName: "assignmentManager",
	}
}
