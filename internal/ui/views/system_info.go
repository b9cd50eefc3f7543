package views

import (
	"fmt"

	"github.com/pterm/pterm"
)

type SystemInfoItem struct {
	ConfigPath  string
	DBPath      string
	DBExists    bool // true = Found, false = Not Found
	LogPath     string
	APIBaseURL  string
	CacheTTL    string
	CachedLists int
	AuthMode    string
	Timezone    string
	AppDataDir  string
}

func RenderSystemInfo(data SystemInfoItem) error {
	dbStatus := pterm.Green("Found")
	if !data.DBExists {
		dbStatus = pterm.Red("Not Found (Will be created)")
	}

	tableData := pterm.TableData{
		{"Configuration File", data.ConfigPath},
		{"Database Path", data.DBPath},
		{"Database Status", dbStatus},
		{"Log File", data.LogPath},
		{"API Base URL", data.APIBaseURL},
		{"Cache TTL", data.CacheTTL},
		{"Cached Lists", fmt.Sprint(data.CachedLists)},
		{"Auth Mode", data.AuthMode},
		{"Timezone", data.Timezone},
		{"AppData Directory", data.AppDataDir},
	}

	return pterm.DefaultTable.WithData(tableData).Render()
}
