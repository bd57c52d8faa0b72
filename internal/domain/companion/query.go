package companion

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ListParams is the caller supplied filter and paging for a companion listing.
type ListParams struct {
	Subject string
	Topic   string
	Page    int
	Limit   int
}

// MatchMode selects which filter predicate a Query applies on top of ownership.
type MatchMode int

const (
	MatchAll MatchMode = iota
	MatchSubject
	MatchTopic
	MatchSubjectAndTopic
)

func (m MatchMode) String() string {
	switch m {
	case MatchSubject:
		return "subject"
	case MatchTopic:
		return "topic"
	case MatchSubjectAndTopic:
		return "subject_and_topic"
	default:
		return "all"
	}
}

// Query is a fully composed companion listing. Repositories translate it into one
// statement:
//
//	MatchSubject:         subject ILIKE %Subject%
//	MatchTopic:           topic ILIKE %Topic% OR name ILIKE %Topic%
//	MatchSubjectAndTopic: both of the above, ANDed
//
// always ANDed with author = Author, ordered by created_at descending.
type Query struct {
	Author  string
	Mode    MatchMode
	Subject string
	Topic   string
	Offset  int
	Limit   int
}

// Range returns the inclusive row window [from, to] the query selects.
func (q Query) Range() (from, to int) {
	return q.Offset, q.Offset + q.Limit - 1
}

// ComposeQuery builds the listing query for author from params. Empty filters count as
// absent; page and limit below 1 fall back to their defaults. A page past the addressable
// range selects a window beyond every row.
func ComposeQuery(author string, params ListParams) Query {
	page := params.Page
	if page < 1 {
		page = DefaultPage
	}
	limit := params.Limit
	if limit < 1 {
		limit = DefaultLimit
	}

	subject := params.Subject
	topic := params.Topic

	mode := MatchAll
	switch {
	case subject != "" && topic != "":
		mode = MatchSubjectAndTopic
	case subject != "":
		mode = MatchSubject
	case topic != "":
		mode = MatchTopic
	}

	return Query{
		Author:  author,
		Mode:    mode,
		Subject: subject,
		Topic:   topic,
		Offset:  offset(page, limit),
		Limit:   limit,
	}
}

// offset is (page-1)*limit, saturated so that offset+limit-1 never exceeds math.MaxInt.
func offset(page, limit int) int {
	ceiling := math.MaxInt - limit + 1
	if page-1 > ceiling/limit {
		return ceiling
	}
	return (page - 1) * limit
}
