package server

// muxKeys describes enum with known API tokens.
type muxKeys string

const (
	// urlDevicePath describes monitored device path URL param.
	urlDevicePath muxKeys = "devicePath"
	// urlPropertyPath describes property path URL param.
	urlPropertyPath muxKeys = "propertyPath"
	// urlCategory describes device category URL param.
	urlCategory muxKeys = "category"
	// urlDeviceName describes host device name URL param.
	urlDeviceName muxKeys = "deviceName"
	// ctxtUserName describes user in the context.
	ctxtUserName muxKeys = "user"
	// Resource checked for engine-wide calls.
	resourceEngine = "engine"
	// queryTimeout describes start-up timeout query param.
	queryTimeout = "timeout"
	// queryLevel describes log level query param.
	queryLevel = "level"
	// queryEvent describes property event query param.
	queryEvent = "event"
	// routeAPI describes base api prefix.
	routeAPI = "/api/v1"
	// Max accepted request body.
	maxBodySize = 1 << 20
)
