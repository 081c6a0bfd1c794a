package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-home-io/device-monitor/common"
	"github.com/go-home-io/device-monitor/enums"
	"github.com/go-home-io/device-monitor/providers"
	"gopkg.in/yaml.v2"
)

// Registers devices listed in the body.
func (s *MonitorServer) register(writer http.ResponseWriter, request *http.Request) {
	name := urlParam(request, urlCategory)
	category, err := enums.CategoryString(name)
	if err != nil {
		respondNotFound(writer, &ErrUnknownCategory{Name: name})
		return
	}

	body, err := readBody(request)
	if err != nil {
		respondBadRequest(writer, err)
		return
	}

	switch category {
	case enums.CatNetwork:
		s.engine.RegisterNetworkDevice(string(body))
	case enums.CatSpot:
		s.engine.RegisterSpot(string(body))
	case enums.CatWATCHOUT:
		s.engine.RegisterWatchout(string(body))
	}

	respondOk(writer)
}

// Responds with status of the monitored device.
func (s *MonitorServer) deviceStatus(writer http.ResponseWriter, request *http.Request) {
	path := urlParam(request, urlDevicePath)
	msg, ok := s.engine.DeviceStatus(path)
	if !ok {
		respondNotFound(writer, &ErrUnknownDevice{Path: path})
		return
	}

	respond(writer, msg)
}

// Adds or updates host device.
// Body is either yaml or json device definition.
func (s *MonitorServer) addDevice(writer http.ResponseWriter, request *http.Request) {
	body, err := readBody(request)
	if err != nil {
		respondBadRequest(writer, err)
		return
	}

	d := &providers.RawDevice{}
	if err := yaml.Unmarshal(body, d); err != nil {
		respondBadRequest(writer, err)
		return
	}

	if !s.Settings.Validator().Validate(d) {
		respondBadRequest(writer, &ErrBadRequest{Reason: "invalid device"})
		return
	}

	s.inventory.Add(d)
	s.Logger.Info("Host device added", common.LogDevicePathToken, d.Category.Path(d.Name),
		logUserToken, userName(request))
	respondOk(writer)
}

// Removes host device.
func (s *MonitorServer) removeDevice(writer http.ResponseWriter, request *http.Request) {
	name := urlParam(request, urlCategory)
	category, err := enums.CategoryString(name)
	if err != nil {
		respondNotFound(writer, &ErrUnknownCategory{Name: name})
		return
	}

	path := category.Path(urlParam(request, urlDeviceName))
	if !s.inventory.Remove(category, urlParam(request, urlDeviceName)) {
		respondNotFound(writer, &ErrUnknownDevice{Path: path})
		return
	}

	s.Logger.Info("Host device removed", common.LogDevicePathToken, path, logUserToken, userName(request))
	respondOk(writer)
}

// Responds with current property value.
func (s *MonitorServer) getProperty(writer http.ResponseWriter, request *http.Request) {
	path := urlParam(request, urlPropertyPath)
	value, available := s.store.Get(path)
	respond(writer, &wsFrame{Path: path, Value: value, Available: &available})
}

// Sets property value from json body.
func (s *MonitorServer) setProperty(writer http.ResponseWriter, request *http.Request) {
	value, err := readJSONValue(request)
	if err != nil {
		respondBadRequest(writer, err)
		return
	}

	s.store.Set(urlParam(request, urlPropertyPath), value)
	respondOk(writer)
}

// Marks property unavailable.
func (s *MonitorServer) deleteProperty(writer http.ResponseWriter, request *http.Request) {
	s.store.SetAvailable(urlParam(request, urlPropertyPath), false)
	respondOk(writer)
}

// Publishes property event with json payload.
func (s *MonitorServer) publishEvent(writer http.ResponseWriter, request *http.Request) {
	event := request.URL.Query().Get(queryEvent)
	if "" == event {
		respondBadRequest(writer, &ErrBadRequest{Reason: "event is not set"})
		return
	}

	payload, err := readJSONValue(request)
	if err != nil {
		respondBadRequest(writer, err)
		return
	}

	s.store.Publish(urlParam(request, urlPropertyPath), event, payload)
	respondOk(writer)
}

// Reads json value from the body.
func readJSONValue(request *http.Request) (interface{}, error) {
	body, err := readBody(request)
	if err != nil {
		return nil, err
	}

	var value interface{}
	if err := json.Unmarshal(body, &value); err != nil {
		return nil, &ErrBadRequest{Reason: err.Error()}
	}

	return value, nil
}
