package main

import (
	"log"

	"evroute/server"
)

func main() {

	service, err := server.NewService()
	if err != nil {
		log.Println("service initialization failed", err)
		return
	}
	service.Start()

}
