package postgres

import (
	"fmt"
	"strings"

	"geoevents/internal/domain"
)

const (
	eventColumns = `e.id, e.title, e.event_date, e.description, ST_AsText(e.location), e.category, e.image_url, e.organizer_id, u.email, e.created_at`
	eventSource  = `events e JOIN users u ON u.id = e.organizer_id`
	// originPoint expects longitude then latitude placeholders.
	originPoint = `ST_SetSRID(ST_MakePoint($%d, $%d), 4326)::geography`
)

// eventSearch is a compiled filter. where and args are shared by the count
// and data queries; orderArgs are only bound by the data query.
type eventSearch struct {
	where     string
	args      []any
	orderBy   string
	orderArgs []any
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func buildEventSearch(f domain.EventFilter) eventSearch {
	var conditions []string
	var args []any
	argIndex := 1

	if f.Origin != nil && f.Radius != nil {
		conditions = append(conditions, fmt.Sprintf("ST_DWithin(e.location, "+originPoint+", $%d)", argIndex, argIndex+1, argIndex+2))
		args = append(args, f.Origin.Lng, f.Origin.Lat, *f.Radius)
		argIndex += 3
	}
	if title := strings.TrimSpace(f.Title); title != "" {
		conditions = append(conditions, fmt.Sprintf("e.title ILIKE $%d", argIndex))
		args = append(args, "%"+likeEscaper.Replace(title)+"%")
		argIndex++
	}
	if f.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("e.event_date >= $%d", argIndex))
		args = append(args, f.StartDate.UTC())
		argIndex++
	}
	if f.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("e.event_date <= $%d", argIndex))
		args = append(args, f.EndDate.UTC())
		argIndex++
	}
	if category := strings.TrimSpace(f.Category); category != "" {
		conditions = append(conditions, fmt.Sprintf("e.category = $%d", argIndex))
		args = append(args, category)
		argIndex++
	}
	if f.OrganizerID != 0 {
		conditions = append(conditions, fmt.Sprintf("e.organizer_id = $%d", argIndex))
		args = append(args, f.OrganizerID)
		argIndex++
	}

	s := eventSearch{where: "TRUE", args: args}
	if len(conditions) > 0 {
		s.where = strings.Join(conditions, " AND ")
	}

	switch f.EffectiveSort() {
	case domain.SortDistanceAsc:
		s.orderBy = fmt.Sprintf("ST_Distance(e.location, "+originPoint+") ASC, e.id ASC", argIndex, argIndex+1)
		s.orderArgs = []any{f.Origin.Lng, f.Origin.Lat}
	case domain.SortDateDesc:
		s.orderBy = "e.event_date DESC, e.id DESC"
	default:
		s.orderBy = "e.event_date ASC, e.id ASC"
	}
	return s
}

func (s eventSearch) countQuery() (string, []any) {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", eventSource, s.where), s.args
}

func (s eventSearch) dataQuery(page domain.PaginationParams) (string, []any) {
	args := make([]any, 0, len(s.args)+len(s.orderArgs)+2)
	args = append(args, s.args...)
	args = append(args, s.orderArgs...)
	n := len(args)
	args = append(args, page.Limit, page.Offset)

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d",
		eventColumns, eventSource, s.where, s.orderBy, n+1, n+2)
	return query, args
}
