// seed-catalog loads training programs and performance categories from a JSON
// file into Firestore. Doc IDs are slugs derived from the names, so re-running
// the seed overwrites instead of duplicating.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"club-scheduler/backend/internal/config"
	"club-scheduler/backend/internal/domain/catalog"
	"club-scheduler/backend/internal/firebase"
	"club-scheduler/backend/internal/utils"
)

type seedFile struct {
	Programs []struct {
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
	} `json:"programs"`
	Categories []struct {
		Name string `json:"name"`
		Unit string `json:"unit"`
	} `json:"categories"`
}

func main() {
	file := flag.String("file", "", "path to the seed json")
	flag.Parse()
	if *file == "" {
		log.Fatal("file is required: -file=seed.json")
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("read %s: %v", *file, err)
	}
	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		log.Fatalf("parse %s: %v", *file, err)
	}

	ctx := context.Background()
	cfg := config.Load()

	app, err := firebase.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("firebase.NewApp: %v", err)
	}
	fs, err := firebase.NewFirestore(ctx, app)
	if err != nil {
		log.Fatalf("firestore init failed: %v", err)
	}
	defer fs.Close()

	now := time.Now().UTC()

	for _, p := range seed.Programs {
		id := utils.Slugify(p.Name)
		if id == "" {
			log.Fatalf("program with empty name in %s", *file)
		}
		_, err := fs.Client.Collection("programs").Doc(id).Set(ctx, catalog.Program{
			ID:          id,
			Name:        p.Name,
			Description: p.Description,
			CreatedAt:   now,
		})
		if err != nil {
			log.Fatalf("seed program %s: %v", id, err)
		}
		fmt.Println("program:", id)
	}

	for _, c := range seed.Categories {
		id := utils.Slugify(c.Name)
		if id == "" {
			log.Fatalf("category with empty name in %s", *file)
		}
		_, err := fs.Client.Collection("categories").Doc(id).Set(ctx, catalog.Category{
			ID:   id,
			Name: c.Name,
			Unit: c.Unit,
		})
		if err != nil {
			log.Fatalf("seed category %s: %v", id, err)
		}
		fmt.Println("category:", id)
	}

	fmt.Printf("ok: %d programs, %d categories\n", len(seed.Programs), len(seed.Categories))
}
