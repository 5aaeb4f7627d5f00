package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/steipete/colorweek/internal/config"
	"github.com/steipete/colorweek/internal/googleapi"
	"github.com/steipete/colorweek/internal/report"
)

// Swappable for tests.
var newCalendarService = googleapi.NewCalendar

const eventsPageSize = 2500

// resolveLocation picks the report timezone: --tz flag, then config, then
// the system zone.
func resolveLocation(tz string) (*time.Location, error) {
	tz = strings.TrimSpace(tz)
	if tz == "" {
		if cfg, err := config.ReadConfig(); err == nil {
			tz = strings.TrimSpace(cfg.Timezone)
		}
	}
	if tz == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return loc, nil
}

// resolveWindow returns the report window: the last completed Sun-Sat week,
// or the explicit --from/--to range.
func resolveWindow(loc *time.Location, from, to string) (report.Window, error) {
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)
	if from == "" && to == "" {
		return report.LastWeek(time.Now(), loc), nil
	}
	if from == "" || to == "" {
		return report.Window{}, usage("--from and --to must be given together")
	}
	start, err := time.Parse(time.RFC3339, from)
	if err != nil {
		return report.Window{}, usage(fmt.Sprintf("invalid --from %q (want RFC3339)", from))
	}
	end, err := time.Parse(time.RFC3339, to)
	if err != nil {
		return report.Window{}, usage(fmt.Sprintf("invalid --to %q (want RFC3339)", to))
	}
	if !start.Before(end) {
		return report.Window{}, usage("--from must be before --to")
	}
	return report.Window{Start: start.In(loc), End: end.In(loc)}, nil
}

// fetchWindowEvents lists all events in the window from one calendar or all
// visible calendars. Uncolored events inherit the owning calendar's default
// color, mapped to the nearest event color. Returns parsed events and the
// count of malformed items that were skipped. Under all=true a failing
// calendar is warned about and skipped instead of aborting the run.
func fetchWindowEvents(ctx context.Context, svc *calendar.Service, calendarID string, all bool, w report.Window, loc *time.Location, warnf func(format string, args ...any)) ([]report.Event, int, error) {
	eventPalette, calendarPalette := fetchPalettes(ctx, svc)

	var cals []*calendar.CalendarListEntry
	if all {
		var pageToken string
		for {
			call := svc.CalendarList.List()
			if pageToken != "" {
				call = call.PageToken(pageToken)
			}
			resp, err := call.Context(ctx).Do()
			if err != nil {
				return nil, 0, err
			}
			for _, c := range resp.Items {
				if c.Hidden {
					continue
				}
				cals = append(cals, c)
			}
			if resp.NextPageToken == "" {
				break
			}
			pageToken = resp.NextPageToken
		}
	} else {
		entry, err := svc.CalendarList.Get(calendarID).Context(ctx).Do()
		if err != nil {
			// Shared calendars aren't always in the list; fetch events anyway.
			slog.Debug("calendar list lookup failed", "calendar", calendarID, "err", err)
			entry = &calendar.CalendarListEntry{Id: calendarID}
		}
		cals = []*calendar.CalendarListEntry{entry}
	}

	var out []report.Event
	skipped := 0
	for _, cal := range cals {
		fallbackColor := ""
		if cal.ColorId != "" {
			fallbackColor = report.NearestEventColor(calendarPalette[cal.ColorId], eventPalette)
		}

		items, err := listEvents(ctx, svc, cal.Id, w)
		if err != nil {
			if all {
				warnf("calendar %s: %v", cal.Id, err)
				continue
			}
			return nil, 0, err
		}
		slog.Debug("fetched events", "calendar", cal.Id, "count", len(items))

		for _, item := range items {
			ev, err := report.ParseEvent(item, loc)
			if err != nil {
				warnf("skipping event %q in %s: %v", item.Summary, cal.Id, err)
				skipped++
				continue
			}
			ev.CalendarID = cal.Id
			if ev.ColorID == "" {
				ev.ColorID = fallbackColor
			}
			out = append(out, ev)
		}
	}
	return out, skipped, nil
}

func listEvents(ctx context.Context, svc *calendar.Service, calendarID string, w report.Window) ([]*calendar.Event, error) {
	var items []*calendar.Event
	var pageToken string
	for {
		call := svc.Events.List(calendarID).
			TimeMin(w.Start.Format(time.RFC3339)).
			TimeMax(w.End.Format(time.RFC3339)).
			SingleEvents(true).
			OrderBy("startTime").
			MaxResults(eventsPageSize)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Context(ctx).Do()
		if err != nil {
			return nil, err
		}
		items = append(items, resp.Items...)
		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}
	return items, nil
}

// fetchPalettes returns the event and calendar color tables as id->background
// hex. Palette lookup failures only disable the uncolored-event fallback.
func fetchPalettes(ctx context.Context, svc *calendar.Service) (event, cal map[string]string) {
	colors, err := svc.Colors.Get().Context(ctx).Do()
	if err != nil {
		slog.Debug("colors lookup failed", "err", err)
		return nil, nil
	}
	event = make(map[string]string, len(colors.Event))
	for id, def := range colors.Event {
		event[id] = def.Background
	}
	cal = make(map[string]string, len(colors.Calendar))
	for id, def := range colors.Calendar {
		cal[id] = def.Background
	}
	return event, cal
}

// categoryMap merges configured labels over the default palette names.
func categoryMap() report.CategoryMap {
	labels := report.DefaultLabels()
	if cfg, err := config.ReadConfig(); err == nil {
		for id, name := range cfg.Labels {
			labels[id] = name
		}
	}
	return report.NewCategoryMap(labels)
}
