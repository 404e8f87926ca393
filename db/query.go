package db

import (
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// reservedParams are consumed by the builder stages and never become
// exact-match filter predicates.
var reservedParams = []string{
	"searchTerm",
	"type",
	"status",
	"fromDate", "from", "startDate",
	"toDate", "to", "endDate",
	"sortBy",
	"sortOrder",
	"page",
	"limit",
	"fields",
}

// values that mean "no restriction" when a type or status dropdown is
// submitted as-is
const (
	allTypesSentinel    = "All Types"
	allStatusesSentinel = "All Statuses"
)

// SearchClause is an OR of case-insensitive substring matches over the
// named fields, ANDed with the rest of the query.
type SearchClause struct {
	Term   string
	Fields []string
}

// DateRangeClause restricts Field to [From, Until). Until is exclusive,
// an inclusive end date is widened to the following midnight before it
// lands here.
type DateRangeClause struct {
	Field string
	From  *time.Time
	Until *time.Time
}

// Query describes a filtered, sorted, paginated selection over a table.
// It is produced by a QueryBuilder and consumed by the store's list
// operations, it never carries raw SQL.
type Query struct {
	Filter    map[string]string
	Search    *SearchClause
	DateRange *DateRangeClause
	SortBy    string
	SortDesc  bool
	Fields    []string
	Page      int
	Limit     int
}

// Skip is the row offset of the requested page window.
func (q *Query) Skip() uint64 {
	return uint64((q.Page - 1) * q.Limit)
}

// Take is the size of the requested page window.
func (q *Query) Take() uint64 {
	return uint64(q.Limit)
}

// Meta derives the page metadata for a total row count.
func (q *Query) Meta(total int) ListMeta {
	return ListMeta{
		Page:       q.Page,
		Limit:      q.Limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(q.Limit))),
	}
}

// ListMeta describes the page window of a list response.
type ListMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// QueryBuilder assembles a Query from a flat query-parameter mapping.
// Stages are chainable and order-independent, each one reads only its
// own parameters. The builder never fails, malformed input degrades to
// the documented defaults.
type QueryBuilder struct {
	params   url.Values
	reserved map[string]struct{}
	query    Query
}

// NewQueryBuilder creates a builder over the given parameters. Extra
// reserved names keep host-specific control parameters out of the
// filter stage.
func NewQueryBuilder(params url.Values, extraReserved ...string) *QueryBuilder {
	reserved := make(map[string]struct{}, len(reservedParams)+len(extraReserved))
	for _, k := range reservedParams {
		reserved[k] = struct{}{}
	}
	for _, k := range extraReserved {
		reserved[k] = struct{}{}
	}
	return &QueryBuilder{
		params:   params,
		reserved: reserved,
		query: Query{
			Filter: make(map[string]string),
			Page:   defaultPage,
			Limit:  defaultLimit,
		},
	}
}

// Filter copies every non-reserved parameter verbatim into the
// exact-match predicate.
func (b *QueryBuilder) Filter() *QueryBuilder {
	for k := range b.params {
		if _, ok := b.reserved[k]; ok {
			continue
		}
		b.query.Filter[k] = b.params.Get(k)
	}
	return b
}

// Search adds a case-insensitive substring search over the given fields
// when a non-empty searchTerm parameter is present.
func (b *QueryBuilder) Search(fields ...string) *QueryBuilder {
	term := b.params.Get("searchTerm")
	if term == "" || len(fields) == 0 {
		return b
	}
	b.query.Search = &SearchClause{
		Term:   term,
		Fields: fields,
	}
	return b
}

// DateRange restricts field to the submitted date window. The start is
// taken from the first present of fromDate, from, startDate and the end
// from toDate, to, endDate. The end date is inclusive, it is widened to
// a strict upper bound on the following midnight.
func (b *QueryBuilder) DateRange(field string) *QueryBuilder {
	from := b.firstDateParam("fromDate", "from", "startDate")
	until := b.firstDateParam("toDate", "to", "endDate")
	if from == nil && until == nil {
		return b
	}
	clause := &DateRangeClause{Field: field, From: from}
	if until != nil {
		u := until.AddDate(0, 0, 1)
		clause.Until = &u
	}
	b.query.DateRange = clause
	return b
}

func (b *QueryBuilder) firstDateParam(names ...string) *time.Time {
	for _, n := range names {
		raw := b.params.Get(n)
		if raw == "" {
			continue
		}
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			return &t
		}
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return &t
		}
	}
	return nil
}

// FilterByType adds an exact upper-cased match on the type parameter.
// The "All Types" sentinel adds nothing.
func (b *QueryBuilder) FilterByType() *QueryBuilder {
	return b.exactUpper("type", allTypesSentinel)
}

// FilterByStatus adds an exact upper-cased match on the status
// parameter. The "All Statuses" sentinel adds nothing.
func (b *QueryBuilder) FilterByStatus() *QueryBuilder {
	return b.exactUpper("status", allStatusesSentinel)
}

func (b *QueryBuilder) exactUpper(name string, sentinel string) *QueryBuilder {
	raw := b.params.Get(name)
	if raw == "" || raw == sentinel {
		return b
	}
	b.query.Filter[name] = strings.ToUpper(raw)
	return b
}

// Sort picks the single sort key from sortBy, falling back to the given
// default. Direction is ascending only for sortOrder=asc, anything else
// sorts descending.
func (b *QueryBuilder) Sort(defaultField string) *QueryBuilder {
	field := b.params.Get("sortBy")
	if field == "" {
		field = defaultField
	}
	b.query.SortBy = field
	b.query.SortDesc = b.params.Get("sortOrder") != "asc"
	return b
}

// Fields reads an optional comma-separated projection from the fields
// parameter.
func (b *QueryBuilder) Fields() *QueryBuilder {
	raw := b.params.Get("fields")
	if raw == "" {
		return b
	}
	fields := make([]string, 0)
	for _, f := range strings.Split(raw, ",") {
		f = strings.TrimSpace(f)
		if f != "" {
			fields = append(fields, f)
		}
	}
	if len(fields) > 0 {
		b.query.Fields = fields
	}
	return b
}

// Paginate reads page and limit, falling back to page 1 and limit 10
// for missing, malformed or non-positive values.
func (b *QueryBuilder) Paginate() *QueryBuilder {
	b.query.Page = positiveIntParam(b.params, "page", defaultPage)
	b.query.Limit = positiveIntParam(b.params, "limit", defaultLimit)
	return b
}

func positiveIntParam(params url.Values, name string, fallback int) int {
	raw := params.Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

// Build returns the assembled query.
func (b *QueryBuilder) Build() Query {
	return b.query
}

// predicate translates the query into a squirrel conjunction, resolving
// public field names through the given column map. Filter keys that do
// not resolve are dropped rather than guessed into identifiers.
func (q *Query) predicate(columns map[string]string) sq.And {
	and := sq.And{}
	keys := make([]string, 0, len(q.Filter))
	for k := range q.Filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		col, ok := columns[k]
		if !ok {
			continue
		}
		and = append(and, sq.Eq{col: q.Filter[k]})
	}
	if q.Search != nil {
		or := sq.Or{}
		pattern := "%" + strings.ToLower(q.Search.Term) + "%"
		for _, f := range q.Search.Fields {
			col, ok := columns[f]
			if !ok {
				continue
			}
			or = append(or, sq.Expr("LOWER("+col+") LIKE ?", pattern))
		}
		if len(or) > 0 {
			and = append(and, or)
		}
	}
	if q.DateRange != nil {
		if col, ok := columns[q.DateRange.Field]; ok {
			if q.DateRange.From != nil {
				and = append(and, sq.GtOrEq{col: *q.DateRange.From})
			}
			if q.DateRange.Until != nil {
				and = append(and, sq.Lt{col: *q.DateRange.Until})
			}
		}
	}
	return and
}

// orderBy resolves the sort key against the column map, unknown keys
// fall back to the given column so user input never reaches ORDER BY.
func (q *Query) orderBy(columns map[string]string, fallback string) string {
	col, ok := columns[q.SortBy]
	if !ok {
		col = fallback
	}
	if q.SortDesc {
		return col + " DESC"
	}
	return col + " ASC"
}

// projection resolves the requested field projection, an empty or fully
// unresolvable projection selects everything.
func (q *Query) projection(columns map[string]string) []string {
	if len(q.Fields) == 0 {
		return []string{"*"}
	}
	cols := make([]string, 0, len(q.Fields))
	for _, f := range q.Fields {
		if col, ok := columns[f]; ok {
			cols = append(cols, col)
		}
	}
	if len(cols) == 0 {
		return []string{"*"}
	}
	return cols
}
