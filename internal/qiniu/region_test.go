package qiniu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegionKnown(t *testing.T) {
	for _, r := range AllRegions() {
		assert.True(t, r.Known(), r)
		assert.NotEmpty(t, r.UploadHost(), r)
		assert.NotEmpty(t, r.RsHost(), r)
		assert.NotEmpty(t, r.APIHost(), r)
	}
	assert.False(t, Region("mars-1").Known())
}

func TestRegionHosts(t *testing.T) {
	assert.Equal(t, "up-z0.qiniup.com", RegionHuadongZhejiang.UploadHost())
	assert.Equal(t, "rs-z2.qiniuapi.com", RegionHuananGuangdong.RsHost())
	// у большинства регионов общий хост метрик
	assert.Equal(t, "api.qiniuapi.com", RegionHuabeiHebei.APIHost())
	assert.Equal(t, "api-cn-northwest-1.qiniuapi.com", RegionXibeiShaanxi1.APIHost())
}
