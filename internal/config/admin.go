package config

type Admin struct {
	Title   string `env:"TITLE,expand" envDefault:"Saskatoon administration"`
	PerPage int    `env:"PER_PAGE,expand" envDefault:"100"`
}
