package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arname-match/internal/config"
	"github.com/arname-match/internal/db"
	"github.com/arname-match/internal/phonetics"
	"github.com/arname-match/internal/store"
	"github.com/arname-match/internal/symspell"
)

func main() {
	config.LoadEnv()

	rootCmd := &cobra.Command{
		Use:   "namematcher",
		Short: "Phonetic encoding and matching for transliterated Arabic names",
		Long: `namematcher encodes Latin-script transliterations of Arabic personal
names into phonetic keys and matches query names against an indexed corpus.

Two encoders are available: arcoder produces the full set of plausible
phonetic normalizations, holmes produces a single canonical key.`,
	}

	rootCmd.AddCommand(createEncodeCmd())
	rootCmd.AddCommand(createInitDBCmd())
	rootCmd.AddCommand(createPingCmd())
	rootCmd.AddCommand(createIndexCmd())
	rootCmd.AddCommand(createMatchCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// createEncodeCmd encodes a name without touching the database
func createEncodeCmd() *cobra.Command {
	var algorithm string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "encode <name>",
		Short: "Encode a name into its phonetic keys",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			name := strings.Join(args, " ")

			var encoder phonetics.Encoder
			switch algorithm {
			case "arcoder":
				encoder = phonetics.NewARCoder(nil)
			case "holmes":
				encoder = phonetics.NewHolmes(nil)
			default:
				log.Fatalf("Unknown algorithm %q (want arcoder or holmes)", algorithm)
			}

			keys, err := encoder.Encode(name)
			if err != nil {
				log.Fatalf("Failed to encode %q: %v", name, err)
			}

			if asJSON {
				out, err := json.Marshal(map[string]interface{}{
					"name":      name,
					"algorithm": algorithm,
					"keys":      keys,
				})
				if err != nil {
					log.Fatalf("Failed to marshal output: %v", err)
				}
				fmt.Println(string(out))
				return
			}

			for _, key := range keys {
				fmt.Println(key)
			}
		},
	}

	cmd.Flags().StringVar(&algorithm, "algorithm", "arcoder", "Encoder to use (arcoder or holmes)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of one key per line")
	return cmd
}

// createInitDBCmd creates the name tables
func createInitDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "initdb",
		Short: "Create the name index tables if they do not exist",
		Run: func(cmd *cobra.Command, args []string) {
			conn, err := db.NewConnection()
			if err != nil {
				log.Fatalf("Failed to connect to database: %v", err)
			}
			defer conn.Close()

			if err := store.New(conn.DB).EnsureSchema(); err != nil {
				log.Fatalf("Failed to create schema: %v", err)
			}
			fmt.Println("Schema is up to date")
		},
	}
}

// createPingCmd checks connectivity and reports corpus size
func createPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check the database connection and report index size",
		Run: func(cmd *cobra.Command, args []string) {
			conn, err := db.NewConnection()
			if err != nil {
				log.Fatalf("Failed to connect to database: %v", err)
			}
			defer conn.Close()

			stats, err := store.New(conn.DB).GetStats()
			if err != nil {
				log.Fatalf("Failed to read stats: %v", err)
			}
			fmt.Printf("Database OK: %d records, %d keys\n", stats.Records, stats.Keys)
		},
	}
}

// createIndexCmd groups the commands that write to the index
func createIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Add names to the index",
	}
	cmd.AddCommand(createIndexAddCmd())
	cmd.AddCommand(createIndexImportCmd())
	return cmd
}

func createIndexAddCmd() *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Index a single name",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			name := strings.Join(args, " ")

			conn, err := db.NewConnection()
			if err != nil {
				log.Fatalf("Failed to connect to database: %v", err)
			}
			defer conn.Close()

			id, err := store.New(conn.DB).AddName(name, source)
			if err != nil {
				log.Fatalf("Failed to index %q: %v", name, err)
			}
			fmt.Printf("Indexed %q as record %d\n", name, id)
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Source label to store with the record")
	return cmd
}

func createIndexImportCmd() *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Bulk-load names from a CSV file (first column, header skipped)",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			conn, err := db.NewConnection()
			if err != nil {
				log.Fatalf("Failed to connect to database: %v", err)
			}
			defer conn.Close()

			imported, err := store.New(conn.DB).ImportCSV(args[0], source)
			if err != nil {
				log.Fatalf("Import failed: %v", err)
			}
			fmt.Printf("Imported %d names\n", imported)
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Source label to store with each record")
	return cmd
}

// createMatchCmd finds stored names sharing a phonetic key with the query
func createMatchCmd() *cobra.Command {
	var correct bool

	cmd := &cobra.Command{
		Use:   "match <name>",
		Short: "Find indexed names that match a query name phonetically",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			name := strings.Join(args, " ")

			conn, err := db.NewConnection()
			if err != nil {
				log.Fatalf("Failed to connect to database: %v", err)
			}
			defer conn.Close()

			if correct {
				corrector, err := symspell.NewCorrector(conn.DB, nil)
				if err != nil {
					log.Fatalf("Failed to build correction dictionary: %v", err)
				}
				corrected, changes := corrector.CorrectName(name)
				if len(changes) > 0 {
					fmt.Printf("Corrected query: %q -> %q\n", name, corrected)
					name = corrected
				}
			}

			candidates, err := store.New(conn.DB).FindCandidates(name)
			if err != nil {
				log.Fatalf("Match failed: %v", err)
			}

			if len(candidates) == 0 {
				fmt.Println("No matches")
				return
			}
			for _, c := range candidates {
				if c.Source != "" {
					fmt.Printf("%d\t%s\t%s\t[%s]\n", c.ID, c.RawName, c.MatchedKey, c.Source)
				} else {
					fmt.Printf("%d\t%s\t%s\n", c.ID, c.RawName, c.MatchedKey)
				}
			}
		},
	}

	cmd.Flags().BoolVar(&correct, "correct", false, "Apply spelling correction to the query first")
	return cmd
}
