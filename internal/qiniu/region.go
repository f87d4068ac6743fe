package qiniu

// Region — код региона хранилища провайдера.
type Region string

const (
	RegionHuadongZhejiang  Region = "z0"
	RegionHuadongZhejiang2 Region = "cn-east-2"
	RegionHuabeiHebei      Region = "z1"
	RegionHuananGuangdong  Region = "z2"
	RegionXibeiShaanxi1    Region = "cn-northwest-1"
	RegionNorthAmerica     Region = "na0"
	RegionSingapore        Region = "as0"
	RegionHanoi            Region = "ap-southeast-2"
	RegionHoChiMinh        Region = "ap-southeast-3"
)

// UcHost is the bucket-management host, shared by all regions.
const UcHost = "uc.qiniuapi.com"

type regionHosts struct {
	upload   string
	download string
	rs       string
	rsf      string
	apiFace  string
}

// Таблица доменов по регионам; apiFace — хост метрик, у большинства
// регионов общий.
var regions = map[Region]regionHosts{
	RegionHuadongZhejiang:  {"up-z0.qiniup.com", "iovip-z0.qiniuio.com", "rs-z0.qiniuapi.com", "rsf-z0.qiniuapi.com", "api.qiniuapi.com"},
	RegionHuadongZhejiang2: {"up-cn-east-2.qiniup.com", "iovip-cn-east-2.qiniuio.com", "rs-cn-east-2.qiniuapi.com", "rsf-cn-east-2.qiniuapi.com", "api.qiniuapi.com"},
	RegionHuabeiHebei:      {"up-z1.qiniup.com", "iovip-z1.qiniuio.com", "rs-z1.qiniuapi.com", "rsf-z1.qiniuapi.com", "api.qiniuapi.com"},
	RegionHuananGuangdong:  {"up-z2.qiniup.com", "iovip-z2.qiniuio.com", "rs-z2.qiniuapi.com", "rsf-z2.qiniuapi.com", "api.qiniuapi.com"},
	RegionXibeiShaanxi1:    {"up-cn-northwest-1.qiniup.com", "iovip-cn-northwest-1.qiniuio.com", "rs-cn-northwest-1.qiniuapi.com", "rsf-cn-northwest-1.qiniuapi.com", "api-cn-northwest-1.qiniuapi.com"},
	RegionNorthAmerica:     {"up-na0.qiniup.com", "iovip-na0.qiniuio.com", "rs-na0.qiniuapi.com", "rsf-na0.qiniuapi.com", "api.qiniuapi.com"},
	RegionSingapore:        {"up-as0.qiniup.com", "iovip-as0.qiniuio.com", "rs-as0.qiniuapi.com", "rsf-as0.qiniuapi.com", "api.qiniuapi.com"},
	RegionHanoi:            {"up-ap-southeast-2.qiniup.com", "iovip-ap-southeast-2.qiniuio.com", "rs-ap-southeast-2.qiniuapi.com", "rsf-ap-southeast-2.qiniuapi.com", "api-ap-southeast-2.qiniuapi.com"},
	RegionHoChiMinh:        {"up-ap-southeast-3.qiniup.com", "iovip-ap-southeast-3.qiniuio.com", "rs-ap-southeast-3.qiniuapi.com", "rsf-ap-southeast-3.qiniuapi.com", "api-ap-southeast-3.qiniuapi.com"},
}

func (r Region) Known() bool {
	_, ok := regions[r]
	return ok
}

func (r Region) UploadHost() string   { return regions[r].upload }
func (r Region) DownloadHost() string { return regions[r].download }
func (r Region) RsHost() string       { return regions[r].rs }
func (r Region) RsfHost() string      { return regions[r].rsf }
func (r Region) APIHost() string      { return regions[r].apiFace }

// AllRegions returns the known region codes in a stable order.
func AllRegions() []Region {
	return []Region{
		RegionHuadongZhejiang,
		RegionHuadongZhejiang2,
		RegionHuabeiHebei,
		RegionHuananGuangdong,
		RegionXibeiShaanxi1,
		RegionNorthAmerica,
		RegionSingapore,
		RegionHanoi,
		RegionHoChiMinh,
	}
}
