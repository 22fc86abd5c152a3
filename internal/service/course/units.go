package course

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ilyadubrovsky/tracking-attendance/internal/domain"
	ierrors "github.com/ilyadubrovsky/tracking-attendance/internal/errors"
	"github.com/ilyadubrovsky/tracking-attendance/internal/summary"
	"github.com/ilyadubrovsky/tracking-attendance/internal/unitdays"
)

func (s *svc) Units() []domain.Unit {
	s.mu.RLock()
	defer s.mu.RUnlock()

	units := make([]domain.Unit, 0, len(s.units))
	for _, unit := range s.units {
		units = append(units, unit.Clone())
	}
	return units
}

// AddUnit stores the unit under a fresh identifier. Range warnings are
// returned with the unit and do not block the write.
func (s *svc) AddUnit(unit domain.Unit) (domain.UnitDays, error) {
	unit.ID = s.newUnitID()
	if err := s.validator.Unit(unit); err != nil {
		return domain.UnitDays{}, fmt.Errorf("validator.Unit: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.units = append(s.units, unit.Clone())
	s.enqueueUnit(unit.ID)

	return s.unitDays(unit), nil
}

func (s *svc) UpdateUnit(unit domain.Unit) (domain.UnitDays, error) {
	if err := s.validator.Unit(unit); err != nil {
		return domain.UnitDays{}, fmt.Errorf("validator.Unit: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.unitIndex(unit.ID)
	if i < 0 {
		return domain.UnitDays{}, fmt.Errorf("unitIndex(%q): %w", unit.ID, ierrors.ErrUnitNotFound)
	}
	s.units[i] = unit.Clone()
	s.enqueueUnit(unit.ID)

	return s.unitDays(unit), nil
}

// RemoveUnit leaves attendance marks untouched.
func (s *svc) RemoveUnit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.unitIndex(id)
	if i < 0 {
		return fmt.Errorf("unitIndex(%q): %w", id, ierrors.ErrUnitNotFound)
	}
	s.units = append(s.units[:i], s.units[i+1:]...)
	s.enqueueUnit(id)

	return nil
}

// UnitDays also resolves the whole-course unit.
func (s *svc) UnitDays(id string) (domain.UnitDays, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id == domain.TotalUnitID {
		return summary.TotalUnit(s.cfg, append([]string{}, s.classDays...)), nil
	}

	unit, ok := s.findUnit(id)
	if !ok {
		return domain.UnitDays{}, fmt.Errorf("findUnit(%q): %w", id, ierrors.ErrUnitNotFound)
	}
	return s.unitDays(unit), nil
}

// FilterUnits matches name or code, case-insensitively. An empty query
// returns every unit.
func (s *svc) FilterUnits(query string) []domain.UnitDays {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.UnitDays, 0, len(s.units))
	for _, unit := range s.units {
		if unit.Matches(query) {
			result = append(result, s.unitDays(unit))
		}
	}
	return result
}

func (s *svc) unitDays(unit domain.Unit) domain.UnitDays {
	v := unitdays.Validate(unit, s.classDays)
	return domain.UnitDays{
		Unit:     unit.Clone(),
		Days:     v.Days,
		Warnings: v.Warnings,
	}
}

func (s *svc) newUnitID() string {
	for {
		id := s.idProvider.NewID()
		if id != domain.TotalUnitID && id != "" {
			return id
		}
		log.Warn().Str("id", id).Msg("identifier provider returned a reserved unit id")
	}
}

func (s *svc) unitIndex(id string) int {
	for i := range s.units {
		if s.units[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *svc) findUnit(id string) (domain.Unit, bool) {
	if i := s.unitIndex(id); i >= 0 {
		return s.units[i].Clone(), true
	}
	return domain.Unit{}, false
}
