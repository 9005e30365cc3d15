package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/mixdeck/internal/models"
)

var csvHeaders = []string{"URI", "Source", "Name", "Artists", "Album", "Track", "Disc", "Duration", "Date"}

// ExportToCSV writes canonical tracks as CSV with columns: URI, Source, Name, Artists, Album, Track, Disc, Duration, Date
func ExportToCSV(tracks []models.Record) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range tracks {
		if track == nil {
			continue
		}
		record := []string{
			track.URI(),
			field(track, models.FieldSource),
			field(track, models.FieldName),
			artistNames(track),
			albumName(track),
			field(track, models.FieldTrackNumber),
			field(track, models.FieldDiscNumber),
			FormatDuration(track[models.FieldDuration]),
			field(track, models.FieldDate),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToText renders canonical tracks as a numbered plain-text listing
func ExportToText(title string, tracks []models.Record) ([]byte, error) {
	var buf bytes.Buffer

	if title != "" {
		buf.WriteString(fmt.Sprintf("%s\n", title))
	}
	buf.WriteString(fmt.Sprintf("Tracks: %d\n\n", len(tracks)))

	for i, track := range tracks {
		if track == nil {
			continue
		}
		line := fmt.Sprintf("%d. %s - %s", i+1, artistNames(track), field(track, models.FieldName))
		if album := albumName(track); album != "" {
			line += fmt.Sprintf(" (%s)", album)
		}
		if track.Has(models.FieldDuration) {
			line += fmt.Sprintf(" [%s]", FormatDuration(track[models.FieldDuration]))
		}
		buf.WriteString(line + "\n")
	}

	return buf.Bytes(), nil
}

// WriteCSVExport writes the CSV export to path, defaulting to tracks.csv.
func WriteCSVExport(tracks []models.Record, path string) (string, error) {
	if path == "" {
		path = "tracks.csv"
	}

	data, err := ExportToCSV(tracks)
	if err != nil {
		return "", fmt.Errorf("failed to generate CSV: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}

	return path, nil
}

// FormatDuration renders a millisecond duration as m:ss, or an empty string when it does not coerce.
func FormatDuration(v any) string {
	ms, ok := models.Int(v)
	if !ok || ms < 0 {
		return ""
	}
	seconds := ms / 1000
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func field(track models.Record, key string) string {
	v, ok := track[key]
	if !ok || v == nil {
		return ""
	}
	return models.Stringify(v)
}

func artistNames(track models.Record) string {
	list, ok := models.AsList(track["artists"])
	if !ok {
		return ""
	}
	names := make([]string, 0, len(list))
	for _, item := range list {
		if artist, ok := models.AsRecord(item); ok {
			if name, ok := artist.String(models.FieldName); ok && name != "" {
				names = append(names, name)
			}
		}
	}
	return strings.Join(names, ", ")
}

func albumName(track models.Record) string {
	album, ok := models.AsRecord(track[models.FieldAlbum])
	if !ok {
		return ""
	}
	name, _ := album.String(models.FieldName)
	return name
}
