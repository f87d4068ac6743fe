package qiniu

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanikLP1/qiniu-stats/internal/stats"
)

func newTestMetrics(t *testing.T) (*Metrics, *httpmock.MockTransport) {
	t.Helper()
	c, mt := newTestClient(t)
	return NewMetrics(c, testLogger()), mt
}

func testBucket() BucketRef {
	return BucketRef{Name: "media", Creds: testCreds}
}

func TestFetchTakesLastElement(t *testing.T) {
	m, mt := newTestMetrics(t)
	mt.RegisterResponder("GET", `=~^https://api\.test/space\?`,
		httpmock.NewStringResponder(200, `{"datas":[10,20,30]}`))

	v := m.StandardStorage(context.Background(), stats.GranularityDay, testBucket(), "20240101000000", "20240101235959")
	assert.Equal(t, int64(30), v)
}

func TestFetchNumericString(t *testing.T) {
	m, mt := newTestMetrics(t)
	mt.RegisterResponder("GET", `=~^https://api\.test/count\?`,
		httpmock.NewStringResponder(200, `{"datas":["123"]}`))

	v := m.StandardCount(context.Background(), stats.GranularityHour, testBucket(), "20240101100000", "20240101105959")
	assert.Equal(t, int64(123), v)
}

func TestFetchNonNumericLastElement(t *testing.T) {
	m, mt := newTestMetrics(t)
	mt.RegisterResponder("GET", `=~^https://api\.test/space_line\?`,
		httpmock.NewStringResponder(200, `{"datas":[5,null]}`))

	v := m.LineStorage(context.Background(), stats.GranularityDay, testBucket(), "20240101000000", "20240101235959")
	assert.Equal(t, int64(0), v)
}

func TestFetchEmptyDatas(t *testing.T) {
	m, mt := newTestMetrics(t)
	mt.RegisterResponder("GET", `=~^https://api\.test/rs_put\?`,
		httpmock.NewStringResponder(200, `{"datas":[]}`))

	v := m.PutRequests(context.Background(), stats.GranularityDay, testBucket(), "20240101000000", "20240101235959")
	assert.Equal(t, int64(0), v)
}

func TestFetchServerErrorIsZero(t *testing.T) {
	m, mt := newTestMetrics(t)
	mt.RegisterResponder("GET", `=~^https://api\.test/space\?`,
		httpmock.NewStringResponder(500, `boom`))

	v := m.StandardStorage(context.Background(), stats.GranularityDay, testBucket(), "20240101000000", "20240101235959")
	assert.Equal(t, int64(0), v)
}

func TestFetchQueryParameters(t *testing.T) {
	m, mt := newTestMetrics(t)

	var gotURL string
	mt.RegisterResponder("GET", `=~^https://api\.test/space_archive\?`,
		func(req *http.Request) (*http.Response, error) {
			gotURL = req.URL.String()
			return httpmock.NewStringResponse(200, `{"datas":[1]}`), nil
		})

	m.ArchiveStorage(context.Background(), stats.GranularityMinute, testBucket(), "20240101103500", "20240101103959")
	assert.Equal(t,
		"https://api.test/space_archive?bucket=media&begin=20240101103500&end=20240101103959&g=5min",
		gotURL)
}

func TestFetchSelectorTakesFirstElement(t *testing.T) {
	m, mt := newTestMetrics(t)
	mt.RegisterResponder("GET", `=~^https://api\.test/v6/blob_io\?`,
		httpmock.NewStringResponder(200, `[{"values":{"hits":42}},{"values":{"hits":99}}]`))

	v := m.GetRequests(context.Background(), stats.GranularityHour, testBucket(), "20240101100000", "20240101105959")
	assert.Equal(t, int64(42), v)
}

func TestFetchSelectorEmptySeries(t *testing.T) {
	m, mt := newTestMetrics(t)
	mt.RegisterResponder("GET", `=~^https://api\.test/v6/blob_io\?`,
		httpmock.NewStringResponder(200, `[]`))

	v := m.InternetTraffic(context.Background(), stats.GranularityDay, testBucket(), "20240101000000", "20240101235959")
	assert.Equal(t, int64(0), v)
}

func TestFetchSelectorQueryParameters(t *testing.T) {
	m, mt := newTestMetrics(t)

	var gotURL string
	mt.RegisterResponder("GET", `=~^https://api\.test/v6/blob_io\?`,
		func(req *http.Request) (*http.Response, error) {
			gotURL = req.URL.String()
			return httpmock.NewStringResponse(200, `[{"values":{"flow":7}}]`), nil
		})

	v := m.CdnTraffic(context.Background(), stats.GranularityDay, testBucket(), "20240101000000", "20240101235959")
	assert.Equal(t, int64(7), v)
	assert.Equal(t,
		"https://api.test/v6/blob_io?begin=20240101000000&end=20240101235959&g=day&select=flow&$metric=cdn_flow_out&$bucket=media",
		gotURL)
}

func TestIntelligentTieringTierSharesEndpoint(t *testing.T) {
	m, mt := newTestMetrics(t)

	mt.RegisterResponder("GET", `=~^https://api\.test/space_intelligent_tiering\?`,
		httpmock.NewStringResponder(200, `{"datas":[11]}`))

	ctx := context.Background()
	for _, tier := range stats.Tiers {
		v := m.IntelligentTieringStorage(ctx, stats.GranularityDay, testBucket(), "20240101000000", "20240101235959", tier)
		assert.Equal(t, int64(11), v, tier.Label())
	}
	// три тира — три запроса на один и тот же путь
	require.Equal(t, 3, mt.GetTotalCallCount())
}

func TestCoerceInt(t *testing.T) {
	cases := []struct {
		in   any
		want int64
	}{
		{float64(42), 42},
		{float64(42.9), 42},
		{"17", 17},
		{"17.5", 17},
		{"abc", 0},
		{nil, 0},
		{true, 0},
		{map[string]any{}, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, coerceInt(tc.in), "%v", tc.in)
	}
}
