// Package notification keeps per-user notices in a flat CSV file, the way
// the rest of the lookup data lives beside the store. Columns:
// id,user,title,date,read.
package notification

import (
	"fmt"

	"github.com/google/uuid"
	"timeclock.app/timeclock/model"
	"timeclock.app/timeclock/utils"
)

var header = []string{"id", "user", "title", "date", "read"}

type Store struct {
	Path string
}

func NewStore(path string) *Store {
	return &Store{Path: path}
}

func (s *Store) load() ([]model.Notification, error) {
	rows, err := utils.ParseCSVFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read notifications: %w", err)
	}

	var out []model.Notification
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 5 {
			return nil, fmt.Errorf("notification row %d: expected 5 columns, got %d", i, len(row))
		}
		out = append(out, model.Notification{
			ID:    row[0],
			User:  row[1],
			Title: row[2],
			Date:  row[3],
			Read:  row[4] == "1",
		})
	}
	return out, nil
}

func (s *Store) save(items []model.Notification) error {
	rows := [][]string{header}
	for _, n := range items {
		read := "0"
		if n.Read {
			read = "1"
		}
		rows = append(rows, []string{n.ID, n.User, n.Title, n.Date, read})
	}
	return utils.WriteCSVFile(s.Path, rows)
}

// Add appends a notice for a user and returns it with its assigned id.
func (s *Store) Add(user, title, date string) (*model.Notification, error) {
	items, err := s.load()
	if err != nil {
		return nil, err
	}
	n := model.Notification{
		ID:    uuid.NewString(),
		User:  user,
		Title: title,
		Date:  date,
	}
	items = append(items, n)
	if err := s.save(items); err != nil {
		return nil, err
	}
	return &n, nil
}

// Pending lists the user's unread notices. A missing file means none.
func (s *Store) Pending(user string) ([]model.Notification, error) {
	items, err := s.load()
	if err != nil {
		return nil, err
	}
	return utils.Filter(items, func(n model.Notification) bool {
		return n.User == user && !n.Read
	}), nil
}

// MarkAllRead flips every notice of the user to read. No file, no work.
func (s *Store) MarkAllRead(user string) error {
	items, err := s.load()
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	changed := false
	for i := range items {
		if items[i].User == user && !items[i].Read {
			items[i].Read = true
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.save(items)
}
