package domain

// Platform identifica a plataforma de anúncios conectada a um canal.
type Platform string

const (
	PlatformMetaAds   Platform = "meta_ads"
	PlatformGoogleAds Platform = "google_ads"
	PlatformTikTokAds Platform = "tiktok_ads"
	PlatformShopify   Platform = "shopify"
)

// Platforms lista o conjunto fechado de plataformas suportadas.
var Platforms = []Platform{
	PlatformMetaAds,
	PlatformGoogleAds,
	PlatformTikTokAds,
	PlatformShopify,
}

// IsValid verifica se a plataforma pertence ao conjunto suportado.
func (p Platform) IsValid() bool {
	for _, known := range Platforms {
		if p == known {
			return true
		}
	}
	return false
}

func (p Platform) String() string {
	return string(p)
}
