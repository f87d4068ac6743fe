package auth

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCreds = Credentials{AccessKey: "AK", SecretKey: "SK"}

func TestQBoxTokenSigningString(t *testing.T) {
	// подписываемая строка: "/buckets\nHost: api.example.com\n\n"
	mac := hmac.New(sha1.New, []byte("SK"))
	mac.Write([]byte("/buckets\nHost: api.example.com\n\n"))
	want := "QBox AK:" + base64.URLEncoding.EncodeToString(mac.Sum(nil))

	got, err := QBoxToken(testCreds, "https://api.example.com/buckets", "")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestQBoxTokenFormat(t *testing.T) {
	got, err := QBoxToken(testCreds, "https://api.example.com/buckets", "")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^QBox [^:]+:[A-Za-z0-9_\-=]+$`), got)
}

func TestQBoxTokenBodyIncluded(t *testing.T) {
	a, err := QBoxToken(testCreds, "https://api.example.com/buckets", "")
	require.NoError(t, err)
	b, err := QBoxToken(testCreds, "https://api.example.com/buckets", "x=1")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestQBoxTokenBadURL(t *testing.T) {
	_, err := QBoxToken(testCreds, "://broken", "")
	assert.ErrorIs(t, err, ErrBadURL)

	_, err = QBoxToken(testCreds, "/no-host", "")
	assert.ErrorIs(t, err, ErrMissingHost)
}

func TestSigningStringHeaderOrdering(t *testing.T) {
	headers := map[string]string{
		"X-Qiniu-Z-Header": "z",
		"X-Qiniu-A-Header": "a",
		"X-Qiniu-B-Header": "b",
		"Content-Type":     "application/json",
	}

	s := SigningString("POST", "/path", "param=value", "domain.com", headers, nil)

	want := "POST /path?param=value" +
		"\nHost: domain.com" +
		"\nContent-Type: application/json" +
		"\nX-Qiniu-aHeader: a" +
		"\nX-Qiniu-bHeader: b" +
		"\nX-Qiniu-zHeader: z" +
		"\n\n"
	assert.Equal(t, want, s)
}

func TestSigningStringOctetStreamExcludesBody(t *testing.T) {
	headers := map[string]string{"Content-Type": "application/octet-stream"}
	body := []byte("secret-payload")

	s := SigningString("POST", "/upload", "", "up.example.com", headers, body)

	assert.NotContains(t, s, "secret-payload")
	assert.True(t, strings.HasSuffix(s, "\n\n"))
}

func TestSigningStringBodyRequiresContentType(t *testing.T) {
	// без Content-Type тело не подписывается
	s := SigningString("POST", "/p", "", "h.com", nil, []byte("data"))
	assert.NotContains(t, s, "data")

	s = SigningString("POST", "/p", "", "h.com", map[string]string{"Content-Type": "application/json"}, []byte("data"))
	assert.True(t, strings.HasSuffix(s, "\n\ndata"))
}

func TestFormatQiniuHeaderKey(t *testing.T) {
	cases := map[string]string{
		"X-Qiniu-Z-Header":  "X-Qiniu-zHeader",
		"X-Qiniu-Date":      "X-Qiniu-date",
		"X-Qiniu-Multi-Seg": "X-Qiniu-multiSeg",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatQiniuHeaderKey(in), in)
	}
}

func TestQiniuTokenFormat(t *testing.T) {
	got, err := QiniuToken(testCreds, "GET", "https://api.example.com/v2/query?x=1", nil, nil)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^Qiniu [^:]+:[A-Za-z0-9_\-=]+$`), got)
}

func TestUploadTokenStructure(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	token, err := UploadToken(testCreds, "test-bucket", "test-key", time.Hour, nil, now)
	require.NoError(t, err)

	parts := strings.Split(token, ":")
	require.Len(t, parts, 3)
	assert.Equal(t, "AK", parts[0])

	raw, err := base64.URLEncoding.DecodeString(parts[2])
	require.NoError(t, err)

	var policy struct {
		Scope    string `json:"scope"`
		Deadline int64  `json:"deadline"`
	}
	require.NoError(t, json.Unmarshal(raw, &policy))
	assert.Equal(t, "test-bucket:test-key", policy.Scope)
	assert.Equal(t, now.Add(time.Hour).Unix(), policy.Deadline)
}

func TestUploadTokenScopeWithoutKey(t *testing.T) {
	token, err := UploadToken(testCreds, "test-bucket", "", time.Hour, nil, time.Now())
	require.NoError(t, err)

	parts := strings.Split(token, ":")
	require.Len(t, parts, 3)

	raw, err := base64.URLEncoding.DecodeString(parts[2])
	require.NoError(t, err)
	var policy map[string]any
	require.NoError(t, json.Unmarshal(raw, &policy))
	assert.Equal(t, "test-bucket", policy["scope"])
	assert.Greater(t, int64(policy["deadline"].(float64)), time.Now().Unix())
}

func TestUploadTokenMergesExtraPolicy(t *testing.T) {
	token, err := UploadToken(testCreds, "b", "", time.Hour, map[string]any{"returnBody": "success"}, time.Now())
	require.NoError(t, err)

	parts := strings.Split(token, ":")
	raw, err := base64.URLEncoding.DecodeString(parts[2])
	require.NoError(t, err)
	var policy map[string]any
	require.NoError(t, json.Unmarshal(raw, &policy))
	assert.Equal(t, "success", policy["returnBody"])
}

func TestDownloadURL(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	got, err := DownloadURL(testCreds, "https://cdn.example.com/file.jpg", time.Hour, now)
	require.NoError(t, err)
	assert.Regexp(t, `^https://cdn\.example\.com/file\.jpg\?e=\d+&token=AK:[A-Za-z0-9_\-=]+$`, got)

	// query уже есть — добавляется через &
	got, err = DownloadURL(testCreds, "https://cdn.example.com/file.jpg?v=2", time.Hour, now)
	require.NoError(t, err)
	assert.Contains(t, got, "?v=2&e=")
}

func TestSignedHeaders(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	headers, err := SignedHeaders(testCreds, "https://api.qiniuapi.com/buckets", now)
	require.NoError(t, err)
	assert.Equal(t, "application/x-www-form-urlencoded", headers["Content-Type"])
	assert.Equal(t, "20240101T100000Z", headers["X-Qiniu-Date"])
	assert.True(t, strings.HasPrefix(headers["Authorization"], "Qiniu AK:"))
}
