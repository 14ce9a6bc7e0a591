package stations

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
)

//go:embed stations.csv
var embeddedStations []byte

type Station struct {
	Name   string `csv:"name"`
	Code   string `csv:"code"`
	Pinyin string `csv:"pinyin"`
}

// Directory maps the names people type to the ticketing service's station
// codes. Pinyin spellings are accepted as well as the Chinese names.
type Directory struct {
	byName   map[string]Station
	byPinyin map[string]Station
	byCode   map[string]Station
}

func Load(reader io.Reader) (*Directory, error) {
	var records []Station
	if err := gocsv.Unmarshal(reader, &records); err != nil {
		return nil, fmt.Errorf("failed to parse stations: %w", err)
	}

	return build(records), nil
}

// ParseStationNames reads the ticketing service's full station table, as
// served in station_name.js:
//
//	var station_names ='@bjb|北京北|VAP|beijingbei|bjb|0@bjd|北京东|BOP|beijingdong|bjd|1'
//
// Entries with fewer than four fields are skipped.
func ParseStationNames(reader io.Reader) (*Directory, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read station names: %w", err)
	}

	entries := strings.Split(string(data), "@")

	var records []Station
	for _, entry := range entries[1:] {
		entry = strings.TrimRight(strings.TrimSpace(entry), "';")

		fields := strings.Split(entry, "|")
		if len(fields) < 4 {
			log.Debug().Str("entry", entry).Msg("Skipping malformed station entry")
			continue
		}

		records = append(records, Station{Name: fields[1], Code: fields[2], Pinyin: fields[3]})
	}

	directory := build(records)
	if directory.Len() == 0 {
		return nil, errors.New("no stations found in station names")
	}

	return directory, nil
}

// Open loads a station table from disk. Files ending in .js are read as
// station_name.js, anything else as CSV.
func Open(path string) (*Directory, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(path), ".js") {
		return ParseStationNames(file)
	}

	return Load(file)
}

// CachePath is where a downloaded station table is kept.
func CachePath() string {
	directory, err := os.UserCacheDir()
	if err != nil {
		return ""
	}

	return filepath.Join(directory, "tickets", "station_name.js")
}

// LoadConfigured returns the table at path when one is given, otherwise the
// downloaded table at CachePath if it exists, otherwise the bundled list.
func LoadConfigured(path string) (*Directory, error) {
	if path != "" {
		return Open(path)
	}

	if cached := CachePath(); cached != "" {
		directory, err := Open(cached)
		switch {
		case err == nil:
			log.Debug().Str("path", cached).Int("stations", directory.Len()).Msg("Loaded downloaded station table")
			return directory, nil
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("failed to load station table %s: %w", cached, err)
		}
	}

	return Default()
}

func build(records []Station) *Directory {
	directory := &Directory{
		byName:   map[string]Station{},
		byPinyin: map[string]Station{},
		byCode:   map[string]Station{},
	}

	for _, station := range records {
		station.Name = strings.TrimSpace(station.Name)
		station.Code = strings.TrimSpace(station.Code)
		station.Pinyin = strings.ToLower(strings.TrimSpace(station.Pinyin))

		if station.Name == "" || station.Code == "" {
			continue
		}

		if existing, exists := directory.byName[station.Name]; exists {
			log.Debug().Str("name", station.Name).Str("kept", existing.Code).Str("ignored", station.Code).Msg("Duplicate station name")
			continue
		}

		directory.byName[station.Name] = station
		if _, exists := directory.byCode[station.Code]; !exists {
			directory.byCode[station.Code] = station
		}
		if _, exists := directory.byPinyin[station.Pinyin]; station.Pinyin != "" && !exists {
			directory.byPinyin[station.Pinyin] = station
		}
	}

	return directory
}

var loadDefault = sync.OnceValues(func() (*Directory, error) {
	return Load(bytes.NewReader(embeddedStations))
})

// Default returns the directory built from the bundled station list.
func Default() (*Directory, error) {
	return loadDefault()
}

func (d *Directory) Lookup(name string) (string, bool) {
	name = strings.TrimSpace(name)

	if station, exists := d.byName[name]; exists {
		return station.Code, true
	}

	if station, exists := d.byPinyin[strings.ToLower(name)]; exists {
		return station.Code, true
	}

	return "", false
}

func (d *Directory) Name(code string) (string, bool) {
	station, exists := d.byCode[code]
	return station.Name, exists
}

func (d *Directory) Len() int {
	return len(d.byName)
}
