package common

const (
	// LogSystemToken describes system log entry.
	LogSystemToken = "system"
	// LogDevicePathToken describes monitored device path log entry.
	LogDevicePathToken = "device_path"
	// LogDeviceTypeToken describes device type log entry.
	LogDeviceTypeToken = "device_type"
	// LogDeviceNameToken describes device name log entry.
	LogDeviceNameToken = "device_name"
	// LogCategoryToken describes device category log entry.
	LogCategoryToken = "category"
	// LogPropertyToken describes property path log entry.
	LogPropertyToken = "property"
	// LogURLToken describes URL log entry.
	LogURLToken = "url"
	// LogStatusToken describes HTTP status log entry.
	LogStatusToken = "status"
	// LogLevelToken describes collector log level entry.
	LogLevelToken = "level"
	// LogRequestIDToken describes outbound request ID log entry.
	LogRequestIDToken = "request_id"
)

const (
	// LogErrorToken describes error log entry.
	LogErrorToken = "error"
	// LogFileToken describes file log entry.
	LogFileToken = "file"
	// LogProviderToken describes provider log entry.
	LogProviderToken = "provider"
	// LogFieldToken describes field log entry.
	LogFieldToken = "field"
	// LogNameToken describes generic name log entry.
	LogNameToken = "name"
)

// MonitorVersion is reported with every heartbeat.
const MonitorVersion = "0.6.1"
