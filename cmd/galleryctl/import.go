package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"artvista/internal/catalog"
	"artvista/models"
)

var (
	numberPattern   = regexp.MustCompile(`\d+(\.\d+)?`)
	cleanWhitespace = regexp.MustCompile(`\s+`)
)

func importCmd() *cobra.Command {
	var pending bool

	cmd := &cobra.Command{
		Use:   "import <csv>",
		Short: "Import artworks from a CSV file",
		Long: `Import artworks from a CSV file with the header

  Title,Artist,Price,Year,Medium,Image,History

Rows whose title and artist already exist in the catalogue are skipped.
Imported artworks are approved unless --pending is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			csvPath := args[0]
			if strings.TrimSpace(csvPath) == "" {
				return fmt.Errorf("csv path must not be empty")
			}

			records, err := readCSV(csvPath)
			if err != nil {
				return fmt.Errorf("read csv: %w", err)
			}

			status := models.StatusApproved
			if pending {
				status = models.StatusPending
			}

			return withCatalog(cmd, func(ctx context.Context, store *catalog.Store) error {
				imported, skipped, err := importArtworks(ctx, store, records, status)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d artworks from %s (%d already present)\n", imported, filepath.Base(csvPath), skipped)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&pending, "pending", false, "Import artworks awaiting curator approval")

	return cmd
}

func importArtworks(ctx context.Context, store *catalog.Store, records []map[string]string, status models.ArtworkStatus) (int, int, error) {
	existing := make(map[string]struct{})
	for _, a := range store.Artworks() {
		existing[artworkKey(a)] = struct{}{}
	}

	imported, skipped := 0, 0
	for idx, record := range records {
		artwork := buildArtwork(record)
		artwork.Status = status

		if _, ok := existing[artworkKey(artwork)]; ok {
			skipped++
			continue
		}
		if err := catalog.ValidateArtwork(artwork); err != nil {
			return imported, skipped, fmt.Errorf("record %d (%s): %w", idx+1, record["Title"], err)
		}
		if _, err := store.AddArtwork(ctx, artwork); err != nil {
			return imported, skipped, fmt.Errorf("record %d (%s): %w", idx+1, record["Title"], err)
		}
		existing[artworkKey(artwork)] = struct{}{}
		imported++
	}
	return imported, skipped, nil
}

func artworkKey(a models.Artwork) string {
	return strings.ToLower(strings.TrimSpace(a.Title)) + "\x00" + strings.ToLower(strings.TrimSpace(a.Artist))
}

func readCSV(path string) ([]map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, errors.New("csv is empty")
	}

	header := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}

		record := make(map[string]string, len(header))
		for idx, key := range header {
			if idx >= len(row) {
				continue
			}
			record[strings.TrimSpace(key)] = strings.TrimSpace(row[idx])
		}
		records = append(records, record)
	}

	return records, nil
}

func buildArtwork(row map[string]string) models.Artwork {
	return models.Artwork{
		Title:   normalizeText(row["Title"]),
		Artist:  normalizeText(row["Artist"]),
		Price:   parsePrice(row["Price"]),
		Year:    normalizeValue(row["Year"]),
		Medium:  normalizeText(row["Medium"]),
		Image:   normalizeValue(row["Image"]),
		History: normalizeText(row["History"]),
	}
}

func normalizeValue(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "N/A") {
		return ""
	}
	return value
}

func normalizeText(value string) string {
	value = normalizeValue(value)
	if value == "" {
		return value
	}
	return strings.TrimSpace(cleanWhitespace.ReplaceAllString(value, " "))
}

// parsePrice reads the first number in value, ignoring currency symbols and digit grouping.
func parsePrice(value string) float64 {
	value = strings.ReplaceAll(normalizeValue(value), ",", "")
	match := numberPattern.FindString(value)
	if match == "" {
		return 0
	}

	parsed, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return parsed
}
