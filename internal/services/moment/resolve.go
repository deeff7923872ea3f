package moment

import (
	"context"
	"fmt"
	"time"

	"github.com/zebulonh89-dotcom/newastro-backend/internal/domain"
)

const dateLayout = "2006-01-02"

// offsetProbe разнос проб смещения зоны вокруг момента, перекрывает
// максимальные смещения UTC-12..UTC+14
const offsetProbe = 14 * time.Hour

// Resolve переводит гражданскую дату и время рождения в момент UTC.
// Зона берётся из явного поля запроса, иначе определяется по координатам
func (s *Service) Resolve(ctx context.Context, query domain.BirthQuery) (domain.ResolvedMoment, error) {
	if err := query.Validate(); err != nil {
		return domain.ResolvedMoment{}, err
	}

	date, err := time.Parse(dateLayout, query.Date)
	if err != nil {
		return domain.ResolvedMoment{}, domain.NewParseError("date",
			fmt.Sprintf("expected YYYY-MM-DD, got %q", query.Date))
	}

	hour, minute, second, err := parseClock(query.Time)
	if err != nil {
		return domain.ResolvedMoment{}, domain.NewParseError("time",
			fmt.Sprintf("expected HH:MM or HH:MM:SS, got %q", query.Time))
	}

	zoneName, err := s.zoneName(query)
	if err != nil {
		return domain.ResolvedMoment{}, err
	}

	loc, err := time.LoadLocation(zoneName)
	if err != nil {
		return domain.ResolvedMoment{}, domain.NewTimezoneResolutionError(
			fmt.Sprintf("unknown timezone %q", zoneName), err)
	}

	local, utc := resolveCivil(loc, date.Year(), date.Month(), date.Day(), hour, minute, second)

	s.log.Debug("birth moment resolved",
		"timezone", zoneName,
		"local", local.Format(time.RFC3339),
		"utc", utc.Format(time.RFC3339),
	)

	return domain.ResolvedMoment{
		Timezone: zoneName,
		Local:    local,
		UTC:      utc,
	}, nil
}

// zoneName явная зона из запроса приоритетнее координат
func (s *Service) zoneName(query domain.BirthQuery) (string, error) {
	if query.Timezone != "" {
		return query.Timezone, nil
	}
	return s.resolver.Resolve(query.Latitude, query.Longitude)
}

// parseClock разбирает время в формате HH:MM или HH:MM:SS
func parseClock(value string) (hour, minute, second int, err error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, perr := time.Parse(layout, value); perr == nil {
			return t.Hour(), t.Minute(), t.Second(), nil
		}
	}
	return 0, 0, 0, fmt.Errorf("unparseable clock value %q", value)
}

// resolveCivil переводит настенные часы в зоне в конкретный момент UTC.
// Поведение time.Date для несуществующих и неоднозначных локальных времён
// не специфицировано, поэтому кандидаты строятся по смещениям зоны вокруг
// момента и проверяются обратным сравнением настенных часов:
//   - один кандидат: обычное время
//   - два кандидата: перевод часов назад, берётся более ранний момент UTC
//   - ни одного: весенний провал, стрелки сдвигаются вперёд на величину провала
func resolveCivil(loc *time.Location, year int, month time.Month, day, hour, minute, second int) (local, utc time.Time) {
	return resolveCivilOnce(loc, year, month, day, hour, minute, second, true)
}

func resolveCivilOnce(loc *time.Location, year int, month time.Month, day, hour, minute, second int, allowShift bool) (local, utc time.Time) {
	naive := time.Date(year, month, day, hour, minute, second, 0, time.UTC)

	offBefore := zoneOffset(loc, naive.Add(-offsetProbe))
	offAfter := zoneOffset(loc, naive.Add(offsetProbe))

	var candidates []time.Time
	for _, off := range distinctOffsets(offBefore, zoneOffset(loc, naive), offAfter) {
		instant := naive.Add(-off)
		if sameWallClock(instant.In(loc), year, month, day, hour, minute, second) {
			candidates = append(candidates, instant)
		}
	}

	var resolved time.Time
	switch {
	case len(candidates) == 1:
		resolved = candidates[0]
	case len(candidates) > 1:
		resolved = earliest(candidates)
	case allowShift:
		gap := offAfter - offBefore
		if gap <= 0 {
			gap = time.Hour
		}
		shifted := naive.Add(gap)
		return resolveCivilOnce(loc, shifted.Year(), shifted.Month(), shifted.Day(),
			shifted.Hour(), shifted.Minute(), shifted.Second(), false)
	default:
		// Два перехода зоны за одни сутки, в базе данных зон такого нет
		resolved = time.Date(year, month, day, hour, minute, second, 0, loc)
	}

	return resolved.In(loc), resolved.UTC()
}

func zoneOffset(loc *time.Location, instant time.Time) time.Duration {
	_, off := instant.In(loc).Zone()
	return time.Duration(off) * time.Second
}

func sameWallClock(t time.Time, year int, month time.Month, day, hour, minute, second int) bool {
	ty, tm, td := t.Date()
	return ty == year && tm == month && td == day &&
		t.Hour() == hour && t.Minute() == minute && t.Second() == second
}

func distinctOffsets(offsets ...time.Duration) []time.Duration {
	out := make([]time.Duration, 0, len(offsets))
	for _, off := range offsets {
		seen := false
		for _, o := range out {
			if o == off {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, off)
		}
	}
	return out
}

func earliest(instants []time.Time) time.Time {
	min := instants[0]
	for _, t := range instants[1:] {
		if t.Before(min) {
			min = t
		}
	}
	return min
}
