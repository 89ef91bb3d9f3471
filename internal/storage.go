package internal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gofrs/flock"
)

var timeNow = time.Now

// StoredCard is one line of the board file.
type StoredCard struct {
	Card
	Column   int `json:"column"`
	Position int `json:"position"`
}

// Store persists a board as JSON Lines. Reads and writes hold an advisory
// lock on a sibling .lock file so the TUI and the HTTP server can share it.
type Store struct {
	path string
	lock *flock.Flock
}

func NewStore(path string) *Store {
	return &Store{path: path, lock: flock.New(path + ".lock")}
}

func (s *Store) Path() string {
	return s.path
}

// BoardFilePath resolves the board file: explicit flag, REORGBOARD_FILE,
// config, then ~/reorgboard.jsonl.
func BoardFilePath(flagPath string, cfg *Config) string {
	if flagPath != "" {
		return filepath.Clean(flagPath)
	}
	if path := os.Getenv("REORGBOARD_FILE"); path != "" {
		return filepath.Clean(path)
	}
	if cfg != nil && cfg.Storage.File != "" {
		return filepath.Clean(cfg.Storage.File)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "reorgboard.jsonl"
	}
	return filepath.Join(home, "reorgboard.jsonl")
}

// Load reads every card. A missing file is an empty board.
func (s *Store) Load() ([]StoredCard, error) {
	if err := s.lockFile(); err != nil {
		return nil, err
	}
	defer s.lock.Unlock()
	return s.read()
}

// Save writes the arrangement, recording each card's column and position.
// Elements that are not cards are skipped.
func (s *Store) Save(a Arrangement) error {
	if err := s.lockFile(); err != nil {
		return err
	}
	defer s.lock.Unlock()
	return s.write(StoredCards(a))
}

// Update runs fn on the loaded cards and writes back what it returns, all
// under one lock.
func (s *Store) Update(fn func([]StoredCard) ([]StoredCard, error)) error {
	if err := s.lockFile(); err != nil {
		return err
	}
	defer s.lock.Unlock()

	cards, err := s.read()
	if err != nil {
		return err
	}
	cards, err = fn(cards)
	if err != nil {
		return err
	}
	return s.write(cards)
}

func (s *Store) lockFile() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock %s: %w", s.path, err)
	}
	return nil
}

func (s *Store) read() ([]StoredCard, error) {
	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []StoredCard{}, nil
		}
		return nil, err
	}
	defer file.Close()
	return decodeCards(file)
}

func decodeCards(r io.Reader) ([]StoredCard, error) {
	var cards []StoredCard
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var card StoredCard
		if err := json.Unmarshal(line, &card); err != nil {
			return nil, fmt.Errorf("invalid JSON at line %d: %w", lineNum, err)
		}
		if card.Updated.IsZero() {
			card.Updated = card.Created
		}
		cards = append(cards, card)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cards, nil
}

func (s *Store) write(cards []StoredCard) error {
	tempFile, err := os.CreateTemp(filepath.Dir(s.path), ".reorgboard-*.tmp")
	if err != nil {
		return err
	}
	tempPath := tempFile.Name()

	defer func() {
		tempFile.Close()
		os.Remove(tempPath)
	}()

	writer := bufio.NewWriter(tempFile)
	for _, card := range cards {
		jsonData, err := json.Marshal(card)
		if err != nil {
			return err
		}
		if _, err := writer.Write(jsonData); err != nil {
			return err
		}
		if err := writer.WriteByte('\n'); err != nil {
			return err
		}
	}

	if err := writer.Flush(); err != nil {
		return err
	}
	if err := tempFile.Sync(); err != nil {
		return err
	}
	if err := tempFile.Close(); err != nil {
		return err
	}
	return os.Rename(tempPath, s.path)
}

// StoredCards flattens an arrangement of cards in column and position order.
func StoredCards(a Arrangement) []StoredCard {
	var out []StoredCard
	for c, col := range a {
		pos := 0
		for _, e := range col {
			card, ok := e.(*Card)
			if !ok {
				continue
			}
			out = append(out, StoredCard{Card: *card, Column: c, Position: pos})
			pos++
		}
	}
	return out
}

// MergeCards lays the cards of a over disk. Cards the arrangement holds take
// its columns and positions; cards only found on disk keep their column and
// go after the arrangement's cards in it.
func MergeCards(disk []StoredCard, a Arrangement) []StoredCard {
	out := StoredCards(a)
	held := make(map[string]struct{}, len(out))
	next := make(map[int]int)
	for _, sc := range out {
		held[sc.ID] = struct{}{}
		next[sc.Column] = max(next[sc.Column], sc.Position+1)
	}

	extra := make([]StoredCard, 0, len(disk))
	for _, sc := range disk {
		if _, ok := held[sc.ID]; !ok {
			extra = append(extra, sc)
		}
	}
	sort.SliceStable(extra, func(i, j int) bool {
		if extra[i].Column != extra[j].Column {
			return extra[i].Column < extra[j].Column
		}
		return extra[i].Position < extra[j].Position
	})
	for _, sc := range extra {
		sc.Position = next[sc.Column]
		next[sc.Column]++
		out = append(out, sc)
	}
	return out
}

// BuildArrangement turns stored cards into an arrangement of at least
// minColumns columns, growing it when a card names a later column. Negative
// columns land in column 0.
func BuildArrangement(cards []StoredCard, minColumns int) (Arrangement, []*Card) {
	count := max(1, minColumns)
	for _, c := range cards {
		count = max(count, c.Column+1)
	}

	sorted := append([]StoredCard{}, cards...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Column != sorted[j].Column {
			return sorted[i].Column < sorted[j].Column
		}
		return sorted[i].Position < sorted[j].Position
	})

	a := NewArrangement(count)
	all := make([]*Card, 0, len(sorted))
	for _, sc := range sorted {
		card := sc.Card
		col := max(0, sc.Column)
		a[col] = append(a[col], &card)
		all = append(all, &card)
	}
	return a, all
}

// FindCard looks a card up by full ID or unique ID prefix.
func FindCard(cards []*Card, id string) (*Card, error) {
	var found *Card
	for _, c := range cards {
		if c.ID == id {
			return c, nil
		}
		if len(id) >= 4 && len(c.ID) >= len(id) && c.ID[:len(id)] == id {
			if found != nil {
				return nil, fmt.Errorf("%q: %w", id, ErrAmbiguousCard)
			}
			found = c
		}
	}
	if found == nil {
		return nil, fmt.Errorf("%q: %w", id, ErrCardNotFound)
	}
	return found, nil
}

// Touch stamps Updated on cards whose column changed between before and
// after.
func Touch(before []StoredCard, after Arrangement, now time.Time) {
	prev := make(map[string]int, len(before))
	for _, sc := range before {
		prev[sc.ID] = sc.Column
	}
	for c, col := range after {
		for _, e := range col {
			card, ok := e.(*Card)
			if !ok {
				continue
			}
			if old, seen := prev[card.ID]; seen && old != c {
				card.Updated = now
			}
		}
	}
}

// MoveCard moves the card id to the end of column on a board built from
// cards, the same way a drop would, and returns the cards to store.
func MoveCard(cards []StoredCard, minColumns int, id string, column int, now time.Time) ([]StoredCard, error) {
	a, all := BuildArrangement(cards, minColumns)
	card, err := FindCard(all, id)
	if err != nil {
		return nil, err
	}

	board := NewBoard()
	if err := board.SetArrangement(a); err != nil {
		return nil, err
	}
	var out []StoredCard
	board.SetChangeObserver(ObserverFunc(func(after Arrangement) {
		Touch(cards, after, now)
		out = StoredCards(after)
	}))
	if err := board.MoveElement(card, column); err != nil {
		return nil, err
	}
	return out, nil
}
