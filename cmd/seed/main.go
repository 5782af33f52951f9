// Package main provides a tool to seed the database with test identities.
//
// It registers a handful of student identities and optionally fills their
// carts with placeholder reservations, which is enough to exercise the cart
// and profile endpoints against a fresh database.
//
// Usage:
//
//	DB_PATH=~/usat-library/data/db go run ./cmd/seed
//	DB_PATH=~/usat-library/data/db go run ./cmd/seed --fill-carts
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/Abddev09/usat-library/internal/domain"
	"github.com/Abddev09/usat-library/internal/id"
	"github.com/Abddev09/usat-library/internal/store"
)

var fillCarts = flag.Bool("fill-carts", false, "Also add placeholder cart entries for each identity")

var seedIdentities = []struct {
	name  string
	phone string
}{
	{"Aziz Karimov", "+998901112233"},
	{"Madina Yusupova", "+998902223344"},
	{"Jasur Toshpulatov", "+998903334455"},
	{"Nilufar Rashidova", "+998904445566"},
}

var seedBooks = []struct {
	id     string
	title  string
	author string
}{
	{"seed-book-1", "Algoritmlar asoslari", "T. Cormen"},
	{"seed-book-2", "Ma'lumotlar bazasi", "C. Date"},
	{"seed-book-3", "Kompyuter tarmoqlari", "A. Tanenbaum"},
}

func main() {
	flag.Parse()

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/usat-library/data/db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := store.New(dbPath, nil, store.NewNoopEmitter())
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	created := 0
	for _, seed := range seedIdentities {
		identity := &domain.Identity{
			ID:          id.MustGenerate("usr"),
			DisplayName: seed.name,
			Phone:       seed.phone,
			CreatedAt:   time.Now(),
		}

		// Skip identities whose phone is already registered
		if existing, err := s.GetIdentityByPhone(ctx, seed.phone); err == nil && existing != nil {
			fmt.Printf("Skipping %s (already registered as %s)\n", seed.name, existing.ID)
			continue
		}

		if err := s.SaveIdentity(ctx, identity); err != nil {
			log.Fatalf("Failed to save identity %s: %v", seed.name, err)
		}
		created++
		fmt.Printf("Registered %s as %s\n", seed.name, identity.ID)

		if *fillCarts {
			fillCart(ctx, s, identity)
		}
	}

	fmt.Printf("\nDone. %d identities created.\n", created)
}

func fillCart(ctx context.Context, s *store.Store, identity *domain.Identity) {
	count := 1 + rand.Intn(len(seedBooks))
	for _, book := range seedBooks[:count] {
		entry := &domain.CartEntry{
			ID:      id.MustGenerate("cart"),
			UserID:  identity.ID,
			BookID:  book.id,
			Title:   book.title,
			Author:  book.author,
			AddedAt: time.Now(),
		}
		if err := s.AddCartEntry(ctx, entry); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				continue
			}
			log.Fatalf("Failed to add cart entry for %s: %v", identity.ID, err)
		}
		fmt.Printf("  Cart: %s -> %s\n", identity.ID, book.title)
	}
}
