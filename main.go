package main

import (
	"log"

	"github.com/simplepaint/simplepaint/internal/ui"
)

func main() {
	log.Println("Starting Simple Paint")
	ui.RunApp()
}
