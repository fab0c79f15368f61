package main

import (
	"log"

	"themesim/cmd"
)

func main() {
	handler, err := cmd.InitializeDependencies(cmd.ConfigPath())
	if err != nil {
		log.Fatal(err)
	}

	err = handler.StartApi(8080)
	if err != nil {
		log.Fatal(err)
	}
}
