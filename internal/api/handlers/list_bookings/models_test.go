package list_bookings

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuery(t *testing.T) {
	req, err := parseQuery(url.Values{
		"advisorId": {"4"},
		"status":    {"confirmed"},
		"date":      {"2024-06-10"},
		"filter":    {"today"},
	})
	require.NoError(t, err)

	require.NotNil(t, req.AdvisorID)
	assert.Equal(t, int64(4), *req.AdvisorID)
	require.NotNil(t, req.Status)
	assert.Equal(t, "confirmed", *req.Status)
	require.NotNil(t, req.Date)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), *req.Date)
	require.NotNil(t, req.Filter)
	assert.Equal(t, "today", *req.Filter)

	req, err = parseQuery(url.Values{})
	require.NoError(t, err)
	assert.Nil(t, req.AdvisorID)
	assert.Nil(t, req.Status)
	assert.Nil(t, req.Date)
	assert.Nil(t, req.Filter)

	_, err = parseQuery(url.Values{"advisorId": {"x"}})
	assert.ErrorIs(t, err, errInvalidAdvisorID)

	_, err = parseQuery(url.Values{"date": {"2024/06/10"}})
	assert.ErrorIs(t, err, errInvalidDate)
}
