package main

import (
	"github.com/bornholm/saskatoon/internal/command"
	"github.com/bornholm/saskatoon/internal/command/migrate"
	"github.com/bornholm/saskatoon/internal/command/properties"
	"github.com/bornholm/saskatoon/internal/command/server"
)

func main() {
	command.Main(
		"saskatoon",
		"Saskatoon harvest administration",
		server.Command(),
		migrate.Command(),
		properties.Command(),
	)
}
