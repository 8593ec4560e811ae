package config

import "time"

type Storage struct {
	Database Database `envPrefix:"DATABASE_"`
	Cache    Cache    `envPrefix:"CACHE_"`
}

type Database struct {
	// DSN is a SQLite file path, or a PostgreSQL connection URL
	// (postgres://...)
	DSN string `env:"DSN,expand" envDefault:"data.sqlite"`
}

type Cache struct {
	Size int           `env:"SIZE,expand" envDefault:"1000"`
	TTL  time.Duration `env:"TTL,expand" envDefault:"1m"`
}
