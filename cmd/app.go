// Package cmd implements the CLI application to value a book of positions.
package cmd

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/etnz/valuation"
	"github.com/google/subcommands"
)

// Commands lists the subcommands a main package registers on its commander.
var Commands = []subcommands.Command{
	&payloadCmd{},
	&snapshotCmd{},
	&topicCmd{},
	&assistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var positionsFile = flag.String("positions-file", "positions.json", "Path to the positions file (JSON array)")
var quotesFile = flag.String("quotes-file", "quotes.json", "Path to the quote records file (JSON array of raw records)")
var configFile = flag.String("config-file", "", "Path to the optional YAML configuration file")

// positionRecord is the on-disk shape of one position.
type positionRecord struct {
	Symbol     string             `json:"symbol"`
	Type       string             `json:"type"`
	Currency   string             `json:"currency"`
	Multiplier valuation.Quantity `json:"multiplier"`
	Quantity   valuation.Quantity `json:"quantity"`
	AvgCost    valuation.Quantity `json:"avg_cost"`
}

// LoadAppConfig reads the config file given on the command line, falling back
// to defaults when no file is given or it does not exist.
func LoadAppConfig() (valuation.Config, error) {
	if *configFile == "" {
		return valuation.DefaultConfig(), nil
	}
	cfg, err := valuation.LoadConfig(*configFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, config file %q does not exist, using defaults", *configFile)
		return valuation.DefaultConfig(), nil
	}
	return cfg, err
}

// DecodePositions reads the app positions file into positions.
func DecodePositions(filename string) ([]valuation.Position, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open positions file: %w", err)
	}
	defer f.Close()

	var records []positionRecord
	dec := json.NewDecoder(f)
	dec.UseNumber()
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("cannot decode positions file %q: %w", filename, err)
	}

	positions := make([]valuation.Position, 0, len(records))
	for i, r := range records {
		typ := valuation.Equity
		if r.Type != "" {
			typ, err = valuation.ParseInstrumentType(r.Type)
			if err != nil {
				return nil, fmt.Errorf("position %d (%s): %w", i, r.Symbol, err)
			}
		}
		multiplier := r.Multiplier
		if multiplier.IsZero() {
			multiplier = valuation.Q(1)
		}
		instrument, err := valuation.NewInstrument(r.Symbol, typ, r.Currency, multiplier)
		if err != nil {
			return nil, fmt.Errorf("position %d (%s): %w", i, r.Symbol, err)
		}
		positions = append(positions, valuation.NewPosition(instrument, r.Quantity, r.AvgCost.Money(r.Currency)))
	}
	return positions, nil
}

// DecodeQuoteRecords reads the app quotes file. Each array element is a raw
// provider record, decoded leniently into a Quote. Records without a usable
// symbol or timestamp are skipped with a warning rather than failing the run.
func DecodeQuoteRecords(filename string) ([]valuation.Quote, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open quotes file: %w", err)
	}
	defer f.Close()

	var records []map[string]any
	dec := json.NewDecoder(f)
	dec.UseNumber()
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("cannot decode quotes file %q: %w", filename, err)
	}

	quotes := make([]valuation.Quote, 0, len(records))
	for i, raw := range records {
		q, err := valuation.DecodeQuote(raw)
		if err != nil {
			log.Printf("warning, skipping quote record %d: %v", i, err)
			continue
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

// LoadBook assembles a refreshed book from the app files.
func LoadBook() (*valuation.Book, error) {
	cfg, err := LoadAppConfig()
	if err != nil {
		return nil, err
	}
	positions, err := DecodePositions(*positionsFile)
	if err != nil {
		return nil, err
	}
	quotes, err := DecodeQuoteRecords(*quotesFile)
	if err != nil {
		return nil, err
	}
	book := valuation.NewBook(cfg)
	book.Refresh(positions, quotes, time.Time{})
	return book, nil
}

// parseAt parses the -at flag of commands that value the book at a given instant.
// An empty value means now.
func parseAt(at string) (time.Time, error) {
	if at == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, at)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid -at value %q: %w", at, err)
	}
	return t.UTC(), nil
}
