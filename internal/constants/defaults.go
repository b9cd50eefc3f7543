package constants

import "time"

const (
	DefaultAPIBaseURL = "https://apim-fintech-dev-jagm.azure-api.net/func-fintech-dev-jagm-v1"
	DefaultAPITimeout = 15 * time.Second

	DefaultCacheTTL = 30 * time.Minute

	DefaultMinAmount         = 0.01
	DefaultMaxAmount         = 10000
	DefaultMaxDescriptionLen = 100

	DefaultChartHours  = 12
	DefaultRecentLimit = 8
	DefaultPageSize    = 10
	MaxPageSize        = 100
	DefaultTimezone    = "America/Mexico_City"

	DefaultLogLevel = "info"
)

const (
	AuthModeDevice = "device"
	AuthModeStatic = "static"

	DefaultAuthClientID = "b32c0847-391c-4036-8cf2-c86b11aad8e8"
	DefaultAuthTenant   = "e1ba6395-7a64-4b92-aaf3-a7c020c3d18f"
	DefaultAuthScope    = "api://4f36cf4f-dc44-47a9-907a-b81219672cea/access_as_user"
	AuthorityBaseURL    = "https://login.microsoftonline.com/"
)

var DefaultAllowedDomains = []string{
	"@uacj.mx",
	"@alumnos.uacj.mx",
	"@uacj.edu.mx",
}
