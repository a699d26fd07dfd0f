package config

import (
	"os"
	"sync"
)

// SiteConfiguration holds the public-site settings the office exposes.
// It lives in process memory, loaded once at startup from the
// environment, with an explicit admin update path instead of a
// database row pretending to be a singleton.
type SiteConfiguration struct {
	SiteName      string `json:"site_name"`
	ContactEmail  string `json:"contact_email"`
	ContactPhone  string `json:"contact_phone"`
	WhatsappLink  string `json:"whatsapp_link"`
	AboutText     string `json:"about_text"`
	AcceptDrivers bool   `json:"accept_driver_requests"`
	AcceptVehicles bool  `json:"accept_vehicle_requests"`
}

var (
	siteConfig   SiteConfiguration
	siteConfigMu sync.RWMutex
)

// LoadSiteConfiguration resets the configuration from the environment.
// Called once at startup; callable again to reload.
func LoadSiteConfiguration() {
	siteConfigMu.Lock()
	defer siteConfigMu.Unlock()

	siteConfig = SiteConfiguration{
		SiteName:       envOr("SITE_NAME", "Gestão de Frota"),
		ContactEmail:   os.Getenv("SITE_CONTACT_EMAIL"),
		ContactPhone:   os.Getenv("SITE_CONTACT_PHONE"),
		WhatsappLink:   os.Getenv("SITE_WHATSAPP_LINK"),
		AboutText:      os.Getenv("SITE_ABOUT_TEXT"),
		AcceptDrivers:  envOr("SITE_ACCEPT_DRIVERS", "true") == "true",
		AcceptVehicles: envOr("SITE_ACCEPT_VEHICLES", "true") == "true",
	}
}

// GetSiteConfiguration returns a copy of the current configuration.
func GetSiteConfiguration() SiteConfiguration {
	siteConfigMu.RLock()
	defer siteConfigMu.RUnlock()
	return siteConfig
}

// UpdateSiteConfiguration replaces the configuration (admin endpoint).
func UpdateSiteConfiguration(cfg SiteConfiguration) {
	siteConfigMu.Lock()
	defer siteConfigMu.Unlock()
	siteConfig = cfg
}
