package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/grovetools/prefs/pkg/settings"
)

func main() {
	schema := settings.Schema("Preferences")

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		log.Fatalf("Error marshaling schema: %v", err)
	}

	// Write to the package root
	if err := os.WriteFile("prefs.schema.json", data, 0644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}

	log.Printf("Successfully generated preferences schema at prefs.schema.json")
}
