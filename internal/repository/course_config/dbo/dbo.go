package dbo

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ilyadubrovsky/tracking-attendance/internal/domain"
)

type courseConfigData struct {
	Start                      string   `json:"start"`
	End                        string   `json:"end"`
	HoursPerDay                float64  `json:"hoursPerDay"`
	StartTime                  string   `json:"startTime"`
	EndTime                    string   `json:"endTime"`
	DaysOfWeek                 []int    `json:"daysOfWeek"`
	RequiredPct                float64  `json:"requiredPct"`
	Holidays                   []string `json:"holidays"`
	CountJustifiedAgainstLimit bool     `json:"countJustifiedAgainstLimit"`
}

func CourseConfigFromDomain(cfg *domain.CourseConfig) ([]byte, error) {
	data := courseConfigData{
		Start:                      cfg.Start,
		End:                        cfg.End,
		HoursPerDay:                cfg.HoursPerDay,
		StartTime:                  cfg.StartTime,
		EndTime:                    cfg.EndTime,
		DaysOfWeek:                 cfg.DaysOfWeek,
		RequiredPct:                cfg.RequiredPct,
		Holidays:                   cfg.Holidays,
		CountJustifiedAgainstLimit: cfg.CountJustifiedAgainstLimit,
	}

	bytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return bytes, nil
}

func CourseConfigToDomain(bytes []byte) (*domain.CourseConfig, error) {
	if len(bytes) == 0 {
		return nil, errors.New("course config bytes is empty")
	}

	data := courseConfigData{}
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	return &domain.CourseConfig{
		Start:                      data.Start,
		End:                        data.End,
		HoursPerDay:                data.HoursPerDay,
		StartTime:                  data.StartTime,
		EndTime:                    data.EndTime,
		DaysOfWeek:                 data.DaysOfWeek,
		RequiredPct:                data.RequiredPct,
		Holidays:                   data.Holidays,
		CountJustifiedAgainstLimit: data.CountJustifiedAgainstLimit,
	}, nil
}
