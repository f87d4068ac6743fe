package qiniu

import (
	"context"
	"fmt"
	"net/url"

	"github.com/DanikLP1/qiniu-stats/internal/auth"
)

// BucketInfo — срез ответа /v2/bucketInfo, только нужные поля.
type BucketInfo struct {
	Zone    string `json:"zone"`
	Private bool   `json:"private"`
}

// ListBuckets returns the bucket names visible to the account.
func (c *Client) ListBuckets(ctx context.Context, cred auth.Credentials) ([]string, error) {
	var names []string
	if err := c.getJSON(ctx, cred, c.baseURL+"/buckets", &names); err != nil {
		return nil, err
	}
	return names, nil
}

// GetBucketInfo returns zone and privacy for one bucket. Пустая zone
// трактуется как z0, как и в discovery-флоу.
func (c *Client) GetBucketInfo(ctx context.Context, cred auth.Credentials, bucket string) (*BucketInfo, error) {
	u := fmt.Sprintf("%s/v2/bucketInfo?bucket=%s", c.baseURL, url.QueryEscape(bucket))
	var info BucketInfo
	if err := c.getJSON(ctx, cred, u, &info); err != nil {
		return nil, err
	}
	if info.Zone == "" {
		info.Zone = string(RegionHuadongZhejiang)
	}
	return &info, nil
}

// GetBucketDomains returns the access domains bound to a bucket.
func (c *Client) GetBucketDomains(ctx context.Context, cred auth.Credentials, bucket string) ([]string, error) {
	u := fmt.Sprintf("%s/v6/domain/list?tbl=%s", c.baseURL, url.QueryEscape(bucket))
	var out struct {
		Domains []string `json:"domains"`
	}
	if err := c.getJSON(ctx, cred, u, &out); err != nil {
		return nil, err
	}
	return out.Domains, nil
}
