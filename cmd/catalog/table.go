package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/Sternrassler/spotify-catalog-client/pkg/client"
)

const (
	outputJSON  = "json"
	outputTable = "table"

	nameWidth = 40
)

// writeTable prints one row per artist, album or track: id, name padded to a
// fixed display width, and popularity when the result carries it.
func writeTable(w io.Writer, result client.Result) error {
	ids := client.IDs(result)
	names := client.Names(result)
	popularities := client.Popularities(result)

	for i := range names {
		row := []string{ids[i], padToWidth(names[i], nameWidth)}
		if i < len(popularities) {
			row = append(row, strconv.Itoa(popularities[i]))
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(row, "  "), " ")); err != nil {
			return err
		}
	}
	return nil
}

// padToWidth pads or truncates text to a fixed display width, measured in
// display columns so wide characters line up.
func padToWidth(text string, width int) string {
	if runewidth.StringWidth(text) > width {
		text = runewidth.Truncate(text, width, "...")
	}
	return runewidth.FillRight(text, width)
}
