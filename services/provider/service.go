package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"medibook/models"
	"medibook/utils"

	"go.uber.org/zap"
)

const profileCacheTTL = 5 * time.Minute

func profileCacheKey(id string) string {
	return "provider:profile:" + id
}

func (s *DefaultProviderService) GetProfile(ctx context.Context, id string) (*models.Provider, error) {
	logger := utils.GetLogger()

	if s.Cache != nil {
		cached, err := s.Cache.Get(ctx, profileCacheKey(id)).Result()
		if err == nil {
			var profile models.Provider
			if err := json.Unmarshal([]byte(cached), &profile); err == nil {
				return &profile, nil
			}
			logger.Warn("dropping unreadable provider profile cache entry", zap.String("providerID", id))
		}
	}

	p, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	profile := p.PublicProfile()

	if s.Cache != nil {
		if data, err := json.Marshal(profile); err == nil {
			if err := s.Cache.Set(ctx, profileCacheKey(id), data, profileCacheTTL).Err(); err != nil {
				logger.Warn("failed to cache provider profile", zap.String("providerID", id), zap.Error(err))
			}
		}
	}
	return &profile, nil
}

func (s *DefaultProviderService) SetupAvailability(ctx context.Context, providerID string, windows []models.Window, now time.Time) (*models.Provider, error) {
	if err := validateWindows(windows); err != nil {
		return nil, err
	}

	p, err := s.Repo.GetByID(providerID)
	if err != nil {
		return nil, err
	}

	// The caller supplies window outlines only; booked intervals are owned
	// by the booking engine and carried over from the current calendar.
	replacement := make([]models.Window, len(windows))
	for i, w := range windows {
		replacement[i] = models.Window{
			DayOfWeek: w.DayOfWeek,
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
		}
	}
	if err := carryOverIntervals(p.Availability, replacement); err != nil {
		return nil, err
	}

	p.Availability = replacement
	p.UpdatedAt = now
	if err := s.Repo.Update(p); err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if err := s.Cache.Del(ctx, profileCacheKey(providerID)).Err(); err != nil {
			utils.GetLogger().Warn("failed to invalidate provider profile cache",
				zap.String("providerID", providerID), zap.Error(err))
		}
	}
	return p, nil
}

var validDays = map[string]bool{
	models.Monday: true, models.Tuesday: true, models.Wednesday: true,
	models.Thursday: true, models.Friday: true, models.Saturday: true,
	models.Sunday: true,
}

func validateWindows(windows []models.Window) error {
	if len(windows) == 0 {
		return fmt.Errorf("%w: at least one window is required", ErrInvalidAvailability)
	}

	type span struct{ start, end int }
	perDay := make(map[string][]span)

	for _, w := range windows {
		if !validDays[w.DayOfWeek] {
			return fmt.Errorf("%w: unknown day of week %q", ErrInvalidAvailability, w.DayOfWeek)
		}
		start, err := utils.ParseTimeToMinutes(w.StartTime)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidAvailability, err)
		}
		end, err := utils.ParseTimeToMinutes(w.EndTime)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidAvailability, err)
		}
		if start >= end {
			return fmt.Errorf("%w: window %s %s-%s is empty or inverted",
				ErrInvalidAvailability, w.DayOfWeek, w.StartTime, w.EndTime)
		}
		perDay[w.DayOfWeek] = append(perDay[w.DayOfWeek], span{start, end})
	}

	for day, spans := range perDay {
		sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
		for i := 1; i < len(spans); i++ {
			if spans[i].start < spans[i-1].end {
				return fmt.Errorf("%w: overlapping windows on %s", ErrInvalidAvailability, day)
			}
		}
	}
	return nil
}

// carryOverIntervals re-homes every booked interval from the old calendar
// into the replacement windows. An interval that fits no new window would be
// orphaned, so the whole change is rejected.
func carryOverIntervals(old, replacement []models.Window) error {
	for _, ow := range old {
		for _, interval := range ow.BookedIntervals {
			iStart, err := utils.ParseTimeToMinutes(interval.StartTime)
			if err != nil {
				return fmt.Errorf("%w: stored interval unreadable: %v", ErrInvalidAvailability, err)
			}
			iEnd, err := utils.ParseTimeToMinutes(interval.EndTime)
			if err != nil {
				return fmt.Errorf("%w: stored interval unreadable: %v", ErrInvalidAvailability, err)
			}

			placed := false
			for i := range replacement {
				nw := &replacement[i]
				if nw.DayOfWeek != ow.DayOfWeek {
					continue
				}
				wStart, _ := utils.ParseTimeToMinutes(nw.StartTime)
				wEnd, _ := utils.ParseTimeToMinutes(nw.EndTime)
				if iStart >= wStart && iEnd <= wEnd {
					nw.BookedIntervals = append(nw.BookedIntervals, interval)
					placed = true
					break
				}
			}
			if !placed {
				return fmt.Errorf("%w: appointment %s (%s %s-%s) would fall outside the new calendar",
					ErrInvalidAvailability, interval.AppointmentID, ow.DayOfWeek, interval.StartTime, interval.EndTime)
			}
		}
	}
	return nil
}
