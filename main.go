package main

import (
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/cmd/app"
)

func main() {
	app.Run()
}
