package building

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Logger defines the logging interface used by the Store.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// ChangeKind names the sub-object a mutation replaced.
type ChangeKind string

const (
	ChangeReplaced    ChangeKind = "replaced"
	ChangeDimensions  ChangeKind = "dimensions"
	ChangeRoof        ChangeKind = "roof"
	ChangeColors      ChangeKind = "colors"
	ChangeWalls       ChangeKind = "walls"
	ChangeLeanTo      ChangeKind = "lean_to"
	ChangeLegacy      ChangeKind = "legacy_lean_tos"
	ChangeOpenings    ChangeKind = "openings"
	ChangeEnvironment ChangeKind = "environment"
	ChangeInteraction ChangeKind = "interaction"
)

// Geometric reports whether a change of this kind can alter derived geometry.
func (k ChangeKind) Geometric() bool {
	switch k {
	case ChangeColors, ChangeEnvironment, ChangeInteraction, ChangeLegacy:
		return false
	}
	return true
}

// Change is delivered to subscribers after every successful mutation.
type Change struct {
	Revision uint64
	Kind     ChangeKind
	// Config is a private copy; subscribers may keep it.
	Config *Config
}

// Store holds the current design and applies the named mutations.
//
// All public methods are thread-safe. Subscribers are called synchronously
// after the lock is released, in registration order.
type Store struct {
	mu          sync.RWMutex
	cfg         *Config
	revision    uint64
	subscribers []func(Change)
	logger      Logger
}

// NewStore creates a store seeded with cfg. A nil cfg starts from Default().
func NewStore(cfg *Config) *Store {
	if cfg == nil {
		cfg = Default()
	}
	return &Store{
		cfg:    normalise(cfg.DeepCopy()),
		logger: noopLogger{},
	}
}

// SetLogger sets the logger for the store.
func (s *Store) SetLogger(logger Logger) {
	s.logger = logger
}

// Subscribe registers fn to be called after every successful mutation.
func (s *Store) Subscribe(fn func(Change)) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

// Snapshot returns a deep copy of the current design.
func (s *Store) Snapshot() *Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.DeepCopy()
}

// Revision returns the number of successful mutations applied so far.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// mutate applies fn to a copy of the design and swaps it in if fn succeeds.
// A failed mutation leaves the design and revision untouched.
func (s *Store) mutate(kind ChangeKind, fn func(c *Config) error) error {
	s.mu.Lock()
	next := s.cfg.DeepCopy()
	if err := fn(next); err != nil {
		s.mu.Unlock()
		s.logger.Debug("design mutation rejected", "kind", string(kind), "error", err)
		return err
	}
	s.cfg = next
	s.revision++
	change := Change{Revision: s.revision, Kind: kind, Config: next.DeepCopy()}
	subs := make([]func(Change), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	s.logger.Debug("design changed", "kind", string(kind), "revision", change.Revision)
	for _, fn := range subs {
		fn(change)
	}
	return nil
}

// Replace swaps in a whole design, as when loading a saved one. The
// dragging flag belongs to the live drag controller, so the incoming value
// is ignored and the current one kept.
func (s *Store) Replace(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	return s.mutate(ChangeReplaced, func(c *Config) error {
		dragging := c.Interaction.Dragging
		*c = *normalise(cfg.DeepCopy())
		c.Interaction.Dragging = dragging
		return nil
	})
}

// SetDimensions replaces width, length and eave height. Stored openings
// keep their positions; derivation clamps them to the new walls.
func (s *Store) SetDimensions(d Dimensions) error {
	if err := ValidateDimensions(d); err != nil {
		return err
	}
	return s.mutate(ChangeDimensions, func(c *Config) error {
		c.Dimensions = d
		return nil
	})
}

// SetRoof replaces the roof fields, overhangs included.
func (s *Store) SetRoof(r Roof) error {
	if err := ValidateRoof(r); err != nil {
		return err
	}
	return s.mutate(ChangeRoof, func(c *Config) error {
		c.Roof = r
		return nil
	})
}

// SetOverhang replaces the overhang on one side.
func (s *Store) SetOverhang(side Side, v float64) error {
	if !ValidSide(side) {
		return fmt.Errorf("%w: %q", ErrInvalidSide, side)
	}
	if err := ValidateOverhang(v); err != nil {
		return err
	}
	return s.mutate(ChangeRoof, func(c *Config) error {
		c.Roof.Overhangs = c.Roof.Overhangs.With(side, v)
		return nil
	})
}

// SetColor replaces one color slot.
func (s *Store) SetColor(slot ColorSlotName, value string) error {
	if !ValidColorSlot(slot) {
		return fmt.Errorf("%w: %q", ErrInvalidColorSlot, slot)
	}
	return s.mutate(ChangeColors, func(c *Config) error {
		c.Colors = c.Colors.With(slot, value)
		return nil
	})
}

// SetWalls replaces the wall settings.
func (s *Store) SetWalls(w Walls) error {
	if err := ValidateWalls(w); err != nil {
		return err
	}
	return s.mutate(ChangeWalls, func(c *Config) error {
		c.Walls = w
		return nil
	})
}

// SetEnclosed sets whether one main wall is enclosed.
func (s *Store) SetEnclosed(side Side, enclosed bool) error {
	if !ValidSide(side) {
		return fmt.Errorf("%w: %q", ErrInvalidSide, side)
	}
	return s.mutate(ChangeWalls, func(c *Config) error {
		c.Walls.Enclosed = c.Walls.Enclosed.With(side, enclosed)
		return nil
	})
}

// SetLeanTo replaces the lean-to configuration on one side.
func (s *Store) SetLeanTo(side Side, l LeanTo) error {
	if !ValidSide(side) {
		return fmt.Errorf("%w: %q", ErrInvalidSide, side)
	}
	if err := ValidateLeanTo(l); err != nil {
		return err
	}
	return s.mutate(ChangeLeanTo, func(c *Config) error {
		c.LeanTos = c.LeanTos.With(side, l)
		return nil
	})
}

// AddLegacyLeanTo appends a legacy lean-to record with a generated ID.
func (s *Store) AddLegacyLeanTo(l LegacyLeanTo) (LegacyLeanTo, error) {
	if err := ValidateLegacyLeanTo(l); err != nil {
		return LegacyLeanTo{}, err
	}
	l.ID = uuid.NewString()
	err := s.mutate(ChangeLegacy, func(c *Config) error {
		c.LegacyLeanTos = append(c.LegacyLeanTos, l)
		return nil
	})
	return l, err
}

// UpdateLegacyLeanTo replaces the legacy record with the same ID.
func (s *Store) UpdateLegacyLeanTo(l LegacyLeanTo) error {
	if err := ValidateLegacyLeanTo(l); err != nil {
		return err
	}
	return s.mutate(ChangeLegacy, func(c *Config) error {
		for i := range c.LegacyLeanTos {
			if c.LegacyLeanTos[i].ID == l.ID {
				c.LegacyLeanTos[i] = l
				return nil
			}
		}
		return ErrLegacyLeanToNotFound
	})
}

// RemoveLegacyLeanTo deletes a legacy record by ID.
func (s *Store) RemoveLegacyLeanTo(id string) error {
	return s.mutate(ChangeLegacy, func(c *Config) error {
		for i := range c.LegacyLeanTos {
			if c.LegacyLeanTos[i].ID == id {
				c.LegacyLeanTos = append(c.LegacyLeanTos[:i], c.LegacyLeanTos[i+1:]...)
				return nil
			}
		}
		return ErrLegacyLeanToNotFound
	})
}

// AddOpening appends an opening. An empty ID is replaced with a generated
// one. Position and bottom offset are clamped to the current walls.
func (s *Store) AddOpening(o Opening) (Opening, error) {
	if err := ValidateOpening(o); err != nil {
		return Opening{}, err
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	var added Opening
	err := s.mutate(ChangeOpenings, func(c *Config) error {
		if _, exists := c.OpeningByID(o.ID); exists {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidOpening, o.ID)
		}
		added = ClampOpening(o, c.Dimensions)
		c.Openings = append(c.Openings, added)
		return nil
	})
	if err != nil {
		return Opening{}, err
	}
	return added, nil
}

// UpdateOpening replaces the opening with the same ID, clamped to the
// current walls.
func (s *Store) UpdateOpening(o Opening) (Opening, error) {
	if err := ValidateOpening(o); err != nil {
		return Opening{}, err
	}
	var updated Opening
	err := s.mutate(ChangeOpenings, func(c *Config) error {
		for i := range c.Openings {
			if c.Openings[i].ID == o.ID {
				updated = ClampOpening(o, c.Dimensions)
				c.Openings[i] = updated
				return nil
			}
		}
		return ErrOpeningNotFound
	})
	if err != nil {
		return Opening{}, err
	}
	return updated, nil
}

// RemoveOpening deletes an opening by ID, clearing the selection if it
// pointed at that opening.
func (s *Store) RemoveOpening(id string) error {
	return s.mutate(ChangeOpenings, func(c *Config) error {
		for i := range c.Openings {
			if c.Openings[i].ID == id {
				c.Openings = append(c.Openings[:i], c.Openings[i+1:]...)
				if c.Interaction.SelectedOpeningID == id {
					c.Interaction.SelectedOpeningID = ""
					c.Interaction.Dragging = false
				}
				return nil
			}
		}
		return ErrOpeningNotFound
	})
}

// SetPlacementMode toggles opening placement mode.
func (s *Store) SetPlacementMode(on bool) error {
	return s.mutate(ChangeInteraction, func(c *Config) error {
		c.Interaction.PlacementMode = on
		return nil
	})
}

// SetSelectedOpening selects an opening by ID; an empty ID clears the selection.
func (s *Store) SetSelectedOpening(id string) error {
	return s.mutate(ChangeInteraction, func(c *Config) error {
		if id != "" {
			if _, ok := c.OpeningByID(id); !ok {
				return ErrOpeningNotFound
			}
		}
		c.Interaction.SelectedOpeningID = id
		return nil
	})
}

// SetDragging sets the drag-in-progress flag.
func (s *Store) SetDragging(on bool) error {
	return s.mutate(ChangeInteraction, func(c *Config) error {
		c.Interaction.Dragging = on
		return nil
	})
}

// SetEnvironment replaces the scene dressing.
func (s *Store) SetEnvironment(e Environment) error {
	return s.mutate(ChangeEnvironment, func(c *Config) error {
		c.Environment = e
		return nil
	})
}

// SetExpandedPanel records which editor panel is open; empty closes all.
func (s *Store) SetExpandedPanel(panel string) error {
	return s.mutate(ChangeInteraction, func(c *Config) error {
		c.Interaction.ExpandedPanel = panel
		return nil
	})
}

// SetViewMode sets the camera preset.
func (s *Store) SetViewMode(m ViewMode) error {
	if !ValidViewMode(m) {
		return fmt.Errorf("%w: unknown view mode %q", ErrInvalidView, m)
	}
	return s.mutate(ChangeInteraction, func(c *Config) error {
		c.Interaction.ViewMode = m
		return nil
	})
}

// SetVisibilityMode sets the four-state display mode.
func (s *Store) SetVisibilityMode(m VisibilityMode) error {
	if !ValidVisibilityMode(m) {
		return fmt.Errorf("%w: unknown visibility mode %q", ErrInvalidView, m)
	}
	return s.mutate(ChangeInteraction, func(c *Config) error {
		c.Interaction.VisibilityMode = m
		return nil
	})
}

// ResetView restores the view and visibility modes to their defaults.
// Selection and drag state are kept.
func (s *Store) ResetView() error {
	return s.mutate(ChangeInteraction, func(c *Config) error {
		d := DefaultInteraction()
		c.Interaction.ViewMode = d.ViewMode
		c.Interaction.VisibilityMode = d.VisibilityMode
		return nil
	})
}

// normalise replaces nil collections with empty ones so JSON output is stable.
func normalise(c *Config) *Config {
	if c.Openings == nil {
		c.Openings = []Opening{}
	}
	if c.LegacyLeanTos == nil {
		c.LegacyLeanTos = []LegacyLeanTo{}
	}
	return c
}
