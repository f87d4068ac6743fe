package auth

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"
)

var (
	ErrBadURL      = errors.New("invalid URL")
	ErrMissingHost = errors.New("URL host is empty")
	ErrBadPolicy   = errors.New("invalid policy JSON")
)

// Credentials — пара ключей аккаунта, только для подписи.
type Credentials struct {
	AccessKey string
	SecretKey string
}

// ----- QBox scheme (management token) -----

// QBoxToken signs path[?query] + "\nHost: <host>\n\n" + body with HMAC-SHA1
// and returns the "QBox AK:sig" authorization value.
func QBoxToken(cred Credentials, rawURL, body string) (string, error) {
	path, query, host, err := splitURL(rawURL)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(path)
	if query != "" {
		b.WriteString("?")
		b.WriteString(query)
	}
	b.WriteString("\nHost: ")
	b.WriteString(host)
	b.WriteString("\n\n")
	b.WriteString(body)

	return "QBox " + cred.AccessKey + ":" + signHS1(cred.SecretKey, b.String()), nil
}

// ----- Qiniu scheme (canonical headers) -----

// QiniuToken signs the canonical request string built by SigningString and
// returns the "Qiniu AK:sig" authorization value. body == nil means no body.
func QiniuToken(cred Credentials, method, rawURL string, headers map[string]string, body []byte) (string, error) {
	path, query, host, err := splitURL(rawURL)
	if err != nil {
		return "", err
	}
	signingStr := SigningString(method, path, query, host, headers, body)
	return "Qiniu " + cred.AccessKey + ":" + signHS1(cred.SecretKey, signingStr), nil
}

// SigningString builds the canonical string for the Qiniu scheme:
//
//	METHOD path[?query]
//	Host: <host>
//	[Content-Type: <value>]
//	[X-Qiniu-*: <value> — renamed, sorted]
//	<blank line>
//	[body — only with a Content-Type that is not application/octet-stream]
func SigningString(method, path, query, host string, headers map[string]string, body []byte) string {
	var b strings.Builder
	b.WriteString(method)
	b.WriteString(" ")
	b.WriteString(path)
	if query != "" {
		b.WriteString("?")
		b.WriteString(query)
	}
	b.WriteString("\nHost: ")
	b.WriteString(host)

	contentType, hasContentType := headers["Content-Type"]
	if hasContentType {
		b.WriteString("\nContent-Type: ")
		b.WriteString(contentType)
	}

	for _, kv := range qiniuHeaders(headers) {
		b.WriteString("\n")
		b.WriteString(kv[0])
		b.WriteString(": ")
		b.WriteString(kv[1])
	}

	b.WriteString("\n\n")

	// Тело попадает в подпись только при известном Content-Type.
	if body != nil && hasContentType && contentType != "application/octet-stream" {
		b.Write(body)
	}
	return b.String()
}

// Верификатор на стороне Qiniu ожидает ключи вида X-Qiniu-zHeader, не
// X-Qiniu-Z-Header. Трансформация повторяется бит-в-бит, не "исправлять".
var qiniuHeaderKeyRe = regexp.MustCompile(`^x-qiniu-|-([a-z])`)

func formatQiniuHeaderKey(key string) string {
	return qiniuHeaderKeyRe.ReplaceAllStringFunc(strings.ToLower(key), func(m string) string {
		if m == "x-qiniu-" {
			return "X-Qiniu-"
		}
		return strings.ToUpper(m[1:])
	})
}

// qiniuHeaders selects the X-Qiniu-* headers, renames the keys and sorts
// them by the renamed key (byte order).
func qiniuHeaders(headers map[string]string) [][2]string {
	var out [][2]string
	for k, v := range headers {
		if strings.HasPrefix(k, "X-Qiniu-") {
			out = append(out, [2]string{formatQiniuHeaderKey(k), v})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

// ----- upload / download tokens -----

// UploadToken builds the 3-segment upload credential
// "AK:sig:encodedPolicy". The signature covers the *encoded* policy JSON.
func UploadToken(cred Credentials, bucket, key string, ttl time.Duration, extra map[string]any, now time.Time) (string, error) {
	scope := bucket
	if key != "" {
		scope += ":" + key
	}

	policy := map[string]any{
		"scope":    scope,
		"deadline": now.Add(ttl).Unix(),
	}
	for k, v := range extra {
		policy[k] = v
	}

	raw, err := json.Marshal(policy)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadPolicy, err)
	}
	encoded := base64URL(raw)
	sign := signHS1(cred.SecretKey, encoded)

	return cred.AccessKey + ":" + sign + ":" + encoded, nil
}

// DownloadURL signs path[?query] + "\n" + deadline and appends
// e=<deadline>&token=AK:sig to the original URL.
func DownloadURL(cred Credentials, rawURL string, ttl time.Duration, now time.Time) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrBadURL, rawURL)
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	query := u.RawQuery
	deadline := now.Add(ttl).Unix()

	signData := path
	if query != "" {
		signData += "?" + query
	}
	signData += fmt.Sprintf("\n%d", deadline)
	sign := signHS1(cred.SecretKey, signData)

	sep := "?"
	if query != "" {
		sep = "&"
	}
	return fmt.Sprintf("%s%se=%d&token=%s:%s", rawURL, sep, deadline, cred.AccessKey, sign), nil
}

// SignedHeaders builds the header set for a signed API call: form
// Content-Type, X-Qiniu-Date and the Qiniu-scheme Authorization over them.
func SignedHeaders(cred Credentials, rawURL string, now time.Time) (map[string]string, error) {
	headers := map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
		"X-Qiniu-Date": now.UTC().Format("20060102T150405Z"),
	}
	authorization, err := QiniuToken(cred, "GET", rawURL, headers, nil)
	if err != nil {
		return nil, err
	}
	headers["Authorization"] = authorization
	return headers, nil
}

// ----- helpers -----

func splitURL(rawURL string) (path, query, host string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", "", fmt.Errorf("%w: %s", ErrBadURL, rawURL)
	}
	path = u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.Host == "" {
		return "", "", "", fmt.Errorf("%w: %s", ErrMissingHost, rawURL)
	}
	return path, u.RawQuery, u.Host, nil
}

func signHS1(secret, data string) string {
	m := hmac.New(sha1.New, []byte(secret))
	m.Write([]byte(data))
	return base64URL(m.Sum(nil))
}

// base64URL — URL-safe base64, padding сохраняется (как у strtr('+/','-_')).
func base64URL(p []byte) string {
	return base64.URLEncoding.EncodeToString(p)
}
