package main

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	AdminSecret string
}

func MustLoadConfig() *Config {
	godotenv.Load()
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	adminSecret := os.Getenv("ADMIN_SECRET")
	if adminSecret == "" {
		panic("ADMIN_SECRET is not provided!")
	}
	return &Config{port, adminSecret}
}
