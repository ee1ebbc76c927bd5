package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// loadDotenv loads the nearest .env (cwd, parent, grandparent). Missing is fine in prod.
func loadDotenv() {
	for _, p := range []string{".env", filepath.Join("..", ".env"), filepath.Join("..", "..", ".env")} {
		if _, err := os.Stat(p); err == nil {
			if err := godotenv.Overload(p); err != nil {
				log.Printf("[env] %s: %v", p, err)
				return
			}
			log.Println("[env] loaded", p)
			return
		}
	}
}
