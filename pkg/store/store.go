// Package store persists named instruments.
//
// An instrument is a notation string saved under a display name, so a player
// can recall "my 10-note Kurd" without retyping the layout. Three backends
// implement the same [Store] interface:
//   - [MemoryStore]: in-process storage for the HTTP server in development and tests
//   - [FileStore]: one JSON file per instrument, for the CLI
//   - [MongoStore]: shared storage for multi-instance deployments
//
// # Usage
//
//	st := store.NewMemoryStore()
//	inst, err := store.NewInstrument("My Kurd", "D/(F)-A-Bb-C-D-E-F-G-A", "aeolian")
//	if err != nil {
//	    return err // invalid name, mode or layout
//	}
//	if err := st.Save(ctx, inst); err != nil {
//	    return err
//	}
//	got, err := st.Get(ctx, inst.ID)
package store

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/panforge/panlayout/pkg/errors"
	"github.com/panforge/panlayout/pkg/notation"
	"github.com/panforge/panlayout/pkg/spell"
)

// Instrument is a saved layout.
type Instrument struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Layout    string    `json:"layout"`
	Mode      string    `json:"mode"`
	Notes     int       `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is the interface for instrument storage backends.
type Store interface {
	// Save validates and stores an instrument, assigning an ID and creation
	// time when they are unset. Saving an existing ID replaces it.
	Save(ctx context.Context, inst *Instrument) error

	// Get retrieves an instrument by ID.
	// Returns a NOT_FOUND error if it doesn't exist.
	Get(ctx context.Context, id string) (*Instrument, error)

	// List returns every instrument, oldest first.
	List(ctx context.Context) ([]*Instrument, error)

	// Delete removes an instrument. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// NewInstrument builds and validates an unsaved instrument.
func NewInstrument(name, layout, mode string) (*Instrument, error) {
	inst := &Instrument{Name: name, Layout: layout, Mode: mode}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

// Validate checks the name and mode and parses the layout. On success the
// layout is normalized, the mode canonicalized and Notes filled in.
func (i *Instrument) Validate() error {
	if err := errors.ValidateInstrumentName(i.Name); err != nil {
		return err
	}
	if err := errors.ValidateLayoutString(i.Layout); err != nil {
		return err
	}
	mode, err := spell.ParseMode(i.Mode)
	if err != nil {
		return err
	}
	l, err := notation.Parse(i.Layout)
	if err != nil {
		return err
	}
	i.Layout = notation.Normalize(i.Layout)
	i.Mode = string(mode)
	i.Notes = len(l.Notes)
	return nil
}

// prepare validates inst and fills in the ID and creation time.
func prepare(inst *Instrument) error {
	if inst == nil {
		return errors.New(errors.ErrCodeInvalidInput, "instrument is nil")
	}
	if err := inst.Validate(); err != nil {
		return err
	}
	if inst.ID == "" {
		inst.ID = uuid.NewString()
	} else if _, err := uuid.Parse(inst.ID); err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "invalid instrument id: %q", inst.ID)
	}
	if inst.CreatedAt.IsZero() {
		inst.CreatedAt = time.Now().UTC()
	}
	return nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "instrument not found: %s", id)
}

// sortInstruments orders by creation time, then name.
func sortInstruments(list []*Instrument) {
	sort.SliceStable(list, func(a, b int) bool {
		if !list[a].CreatedAt.Equal(list[b].CreatedAt) {
			return list[a].CreatedAt.Before(list[b].CreatedAt)
		}
		return list[a].Name < list[b].Name
	})
}
