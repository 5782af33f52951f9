package main

import (
	"encoding/json/v2"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/Abddev09/usat-library/internal/domain"
)

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/usat-library/data/db")
	}

	opts := badger.DefaultOptions(dbPath).
		WithReadOnly(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Database Inspection ===")
	fmt.Println()

	identityCount := 0
	err = db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte("identity:")
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(opts.Prefix); it.ValidForPrefix(opts.Prefix); it.Next() {
			item := it.Item()
			key := string(item.Key())

			// Skip index keys
			if strings.HasPrefix(key, "identity:idx:") {
				continue
			}

			err := item.Value(func(val []byte) error {
				var identity domain.Identity
				if err := json.Unmarshal(val, &identity); err != nil {
					return err
				}
				identityCount++
				if identityCount <= 5 {
					fmt.Printf("Identity: %s\n", identity.ID)
					fmt.Printf("  Name: %s\n", identity.DisplayName)
					fmt.Printf("  Registered: %s\n", identity.CreatedAt.Format("2006-01-02 15:04"))
					fmt.Println()
				}
				return nil
			})
			if err != nil {
				log.Printf("Error reading identity %s: %v", key, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Error iterating identities: %v", err)
	}

	entryCount := 0
	entriesPerUser := make(map[string]int)
	err = db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte("cart:")
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(opts.Prefix); it.ValidForPrefix(opts.Prefix); it.Next() {
			item := it.Item()
			key := string(item.Key())

			if strings.HasPrefix(key, "cart:idx:") {
				continue
			}

			err := item.Value(func(val []byte) error {
				var entry domain.CartEntry
				if err := json.Unmarshal(val, &entry); err != nil {
					return err
				}
				entryCount++
				entriesPerUser[entry.UserID]++
				if entryCount <= 5 {
					fmt.Printf("Cart entry: %s\n", key)
					fmt.Printf("  User: %s\n", entry.UserID)
					fmt.Printf("  Book: %s\n", entry.BookID)
					fmt.Printf("  Added: %s\n", entry.AddedAt.Format("2006-01-02 15:04"))
					fmt.Println()
				}
				return nil
			})
			if err != nil {
				log.Printf("Error reading cart entry %s: %v", key, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Error iterating cart entries: %v", err)
	}

	fmt.Println("=== Summary ===")
	fmt.Printf("Registered identities: %d\n", identityCount)
	fmt.Printf("Cart entries: %d\n", entryCount)
	fmt.Printf("Users with carts: %d\n", len(entriesPerUser))
	if len(entriesPerUser) > 0 {
		fmt.Printf("Average entries per cart: %.1f\n", float64(entryCount)/float64(len(entriesPerUser)))
	}
}
