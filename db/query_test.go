package db

import (
	"net/url"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterSkipsReservedParams(t *testing.T) {
	params := url.Values{}
	params.Set("searchTerm", "doe")
	params.Set("type", "PERSONAL")
	params.Set("status", "PENDING")
	params.Set("fromDate", "2024-01-01")
	params.Set("from", "2024-01-01")
	params.Set("startDate", "2024-01-01")
	params.Set("toDate", "2024-02-01")
	params.Set("to", "2024-02-01")
	params.Set("endDate", "2024-02-01")
	params.Set("sortBy", "lastName")
	params.Set("sortOrder", "asc")
	params.Set("page", "3")
	params.Set("limit", "25")
	params.Set("fields", "firstName,lastName")
	params.Set("state", "TX")

	q := NewQueryBuilder(params).Filter().Build()
	assert.Equal(t, map[string]string{"state": "TX"}, q.Filter)
}

func TestFilterCopiesNonReservedParamsVerbatim(t *testing.T) {
	params := url.Values{}
	params.Set("city", "Austin")
	params.Set("employerStatus", "Employed")
	params.Set("unknownColumn", "whatever")

	q := NewQueryBuilder(params).Filter().Build()
	assert.Equal(t, "Austin", q.Filter["city"])
	assert.Equal(t, "Employed", q.Filter["employerStatus"])
	assert.Equal(t, "whatever", q.Filter["unknownColumn"])
}

func TestFilterHonoursExtraReservedParams(t *testing.T) {
	params := url.Values{}
	params.Set("tenant", "acme")
	params.Set("city", "Austin")

	q := NewQueryBuilder(params, "tenant").Filter().Build()
	_, ok := q.Filter["tenant"]
	assert.False(t, ok)
	assert.Equal(t, "Austin", q.Filter["city"])
}

func TestSearchRequiresTermAndFields(t *testing.T) {
	q := NewQueryBuilder(url.Values{}).Search("firstName", "lastName").Build()
	assert.Nil(t, q.Search)

	params := url.Values{}
	params.Set("searchTerm", "doe")
	q = NewQueryBuilder(params).Search().Build()
	assert.Nil(t, q.Search)

	q = NewQueryBuilder(params).Search("firstName", "lastName", "email").Build()
	require.NotNil(t, q.Search)
	assert.Equal(t, "doe", q.Search.Term)
	assert.Equal(t, []string{"firstName", "lastName", "email"}, q.Search.Fields)
}

func TestDateRangeAcceptsParameterAliases(t *testing.T) {
	for _, name := range []string{"fromDate", "from", "startDate"} {
		params := url.Values{}
		params.Set(name, "2024-03-01")
		q := NewQueryBuilder(params).DateRange("submittedDate").Build()
		require.NotNil(t, q.DateRange, name)
		require.NotNil(t, q.DateRange.From, name)
		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *q.DateRange.From)
		assert.Nil(t, q.DateRange.Until)
	}
	for _, name := range []string{"toDate", "to", "endDate"} {
		params := url.Values{}
		params.Set(name, "2024-03-15")
		q := NewQueryBuilder(params).DateRange("submittedDate").Build()
		require.NotNil(t, q.DateRange, name)
		assert.Nil(t, q.DateRange.From)
		require.NotNil(t, q.DateRange.Until, name)
	}
}

func TestDateRangeWidensEndDateToNextMidnight(t *testing.T) {
	params := url.Values{}
	params.Set("fromDate", "2024-03-01")
	params.Set("toDate", "2024-03-15")

	q := NewQueryBuilder(params).DateRange("submittedDate").Build()
	require.NotNil(t, q.DateRange)
	assert.Equal(t, "submittedDate", q.DateRange.Field)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *q.DateRange.From)
	// the 15th stays inside the window, the 16th does not
	assert.Equal(t, time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), *q.DateRange.Until)
}

func TestDateRangeIgnoresUnparseableInput(t *testing.T) {
	params := url.Values{}
	params.Set("fromDate", "not-a-date")
	q := NewQueryBuilder(params).DateRange("submittedDate").Build()
	assert.Nil(t, q.DateRange)
}

func TestFilterByTypeUppercasesAndSkipsSentinel(t *testing.T) {
	params := url.Values{}
	params.Set("type", "personal")
	q := NewQueryBuilder(params).FilterByType().Build()
	assert.Equal(t, "PERSONAL", q.Filter["type"])

	params.Set("type", "All Types")
	q = NewQueryBuilder(params).FilterByType().Build()
	_, ok := q.Filter["type"]
	assert.False(t, ok)
}

func TestFilterByStatusUppercasesAndSkipsSentinel(t *testing.T) {
	params := url.Values{}
	params.Set("status", "in_review")
	q := NewQueryBuilder(params).FilterByStatus().Build()
	assert.Equal(t, "IN_REVIEW", q.Filter["status"])

	params.Set("status", "All Statuses")
	q = NewQueryBuilder(params).FilterByStatus().Build()
	_, ok := q.Filter["status"]
	assert.False(t, ok)
}

func TestSortDefaultsAndDirection(t *testing.T) {
	q := NewQueryBuilder(url.Values{}).Sort("submittedDate").Build()
	assert.Equal(t, "submittedDate", q.SortBy)
	assert.True(t, q.SortDesc)

	params := url.Values{}
	params.Set("sortBy", "lastName")
	params.Set("sortOrder", "asc")
	q = NewQueryBuilder(params).Sort("submittedDate").Build()
	assert.Equal(t, "lastName", q.SortBy)
	assert.False(t, q.SortDesc)

	// anything but asc sorts descending
	params.Set("sortOrder", "ascending")
	q = NewQueryBuilder(params).Sort("submittedDate").Build()
	assert.True(t, q.SortDesc)
}

func TestFieldsProjection(t *testing.T) {
	q := NewQueryBuilder(url.Values{}).Fields().Build()
	assert.Nil(t, q.Fields)

	params := url.Values{}
	params.Set("fields", "firstName, lastName ,email,")
	q = NewQueryBuilder(params).Fields().Build()
	assert.Equal(t, []string{"firstName", "lastName", "email"}, q.Fields)
}

func TestPaginateDefaults(t *testing.T) {
	q := NewQueryBuilder(url.Values{}).Paginate().Build()
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.Limit)
	assert.Equal(t, uint64(0), q.Skip())
	assert.Equal(t, uint64(10), q.Take())
}

func TestPaginateMalformedInputFallsBackToDefaults(t *testing.T) {
	for _, v := range []string{"abc", "-1", "0", "2.5"} {
		params := url.Values{}
		params.Set("page", v)
		params.Set("limit", v)
		q := NewQueryBuilder(params).Paginate().Build()
		assert.Equal(t, 1, q.Page, v)
		assert.Equal(t, 10, q.Limit, v)
	}
}

func TestPaginateSkipTakeMath(t *testing.T) {
	params := url.Values{}
	params.Set("page", "3")
	params.Set("limit", "25")
	q := NewQueryBuilder(params).Paginate().Build()
	assert.Equal(t, uint64(50), q.Skip())
	assert.Equal(t, uint64(25), q.Take())
}

func TestMetaTotalPagesRoundsUp(t *testing.T) {
	params := url.Values{}
	params.Set("page", "2")
	params.Set("limit", "10")
	q := NewQueryBuilder(params).Paginate().Build()

	meta := q.Meta(95)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 10, meta.Limit)
	assert.Equal(t, 95, meta.Total)
	assert.Equal(t, 10, meta.TotalPages)

	meta = q.Meta(0)
	assert.Equal(t, 0, meta.TotalPages)
}

func TestStagesAreOrderIndependent(t *testing.T) {
	params := url.Values{}
	params.Set("searchTerm", "doe")
	params.Set("status", "pending")
	params.Set("city", "Austin")
	params.Set("page", "2")
	params.Set("limit", "5")

	a := NewQueryBuilder(params).
		Filter().
		Search("firstName", "lastName").
		FilterByStatus().
		Paginate().
		Sort("submittedDate").
		Build()
	b := NewQueryBuilder(params).
		Sort("submittedDate").
		Paginate().
		FilterByStatus().
		Search("firstName", "lastName").
		Filter().
		Build()
	assert.Equal(t, a, b)
}

func TestPredicateResolvesColumnsAndDropsUnknownKeys(t *testing.T) {
	columns := map[string]string{
		"firstName":     "first_name",
		"lastName":      "last_name",
		"status":        "status",
		"submittedDate": "submitted_date",
	}
	params := url.Values{}
	params.Set("firstName", "Jane")
	params.Set("bogus", "1")
	params.Set("searchTerm", "doe")
	params.Set("fromDate", "2024-01-01")
	params.Set("toDate", "2024-01-31")

	q := NewQueryBuilder(params).
		Filter().
		Search("firstName", "lastName", "nope").
		DateRange("submittedDate").
		Build()

	where := q.predicate(columns)
	sql, args, err := sq.Select("*").From("applications").Where(where).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "first_name = ?")
	assert.NotContains(t, sql, "bogus")
	assert.NotContains(t, sql, "nope")
	assert.Contains(t, sql, "LOWER(first_name) LIKE ?")
	assert.Contains(t, sql, "LOWER(last_name) LIKE ?")
	assert.Contains(t, sql, "submitted_date >= ?")
	assert.Contains(t, sql, "submitted_date < ?")
	assert.Contains(t, args, "Jane")
	assert.Contains(t, args, "%doe%")
}

func TestSearchTermIsLowercasedInPattern(t *testing.T) {
	columns := map[string]string{"email": "email"}
	params := url.Values{}
	params.Set("searchTerm", "DoE")
	q := NewQueryBuilder(params).Search("email").Build()

	where := q.predicate(columns)
	_, args, err := sq.Select("*").From("users").Where(where).ToSql()
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"%doe%"}, args)
}

func TestOrderByNeverTrustsRawSortInput(t *testing.T) {
	columns := map[string]string{"lastName": "last_name"}
	params := url.Values{}
	params.Set("sortBy", "last_name; DROP TABLE users")
	q := NewQueryBuilder(params).Sort("submittedDate").Build()
	assert.Equal(t, "submitted_date DESC", q.orderBy(columns, "submitted_date"))

	params.Set("sortBy", "lastName")
	params.Set("sortOrder", "asc")
	q = NewQueryBuilder(params).Sort("submittedDate").Build()
	assert.Equal(t, "last_name ASC", q.orderBy(columns, "submitted_date"))
}

func TestProjectionFallsBackToStar(t *testing.T) {
	columns := map[string]string{"firstName": "first_name"}

	q := NewQueryBuilder(url.Values{}).Fields().Build()
	assert.Equal(t, []string{"*"}, q.projection(columns))

	params := url.Values{}
	params.Set("fields", "nothing,known")
	q = NewQueryBuilder(params).Fields().Build()
	assert.Equal(t, []string{"*"}, q.projection(columns))

	params.Set("fields", "firstName,unknown")
	q = NewQueryBuilder(params).Fields().Build()
	assert.Equal(t, []string{"first_name"}, q.projection(columns))
}
