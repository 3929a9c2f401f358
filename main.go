package main

import (
	"github.com/joho/godotenv"

	"github.com/SusanLiu63/PRNeko/internal/cli"
)

func main() {
	_ = godotenv.Load()
	cli.Execute()
}
