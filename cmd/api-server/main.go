package main

import (
	"github.com/veritlyapp-cell/liah-backend/internal/app"
)

func main() {
	application, err := app.Initialize("")
	if err != nil {
		panic(err)
	}

	app.StartServer(
		application.Config,
		application.Handlers,
		application.Services,
	)
}
