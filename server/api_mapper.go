package server

import "net/http"

// Mapped input exposed by the API.
type mappedValue struct {
	Alias string  `json:"alias"`
	Value float64 `json:"value"`
	Delta float64 `json:"delta"`
}

// Responds with current values of all input mappings.
func (s *MonitorServer) mapperValues(writer http.ResponseWriter, _ *http.Request) {
	result := make([]*mappedValue, 0)
	for _, alias := range s.mapper.Aliases() {
		value, delta, ok := s.mapper.Value(alias)
		if !ok {
			continue
		}

		result = append(result, &mappedValue{Alias: alias, Value: value, Delta: delta})
	}

	respond(writer, result)
}

// Reloads input mappings from the config file.
func (s *MonitorServer) resetMappings(writer http.ResponseWriter, request *http.Request) {
	if err := s.mapper.Reset(); err != nil {
		s.Logger.Error("Failed to reload input mappings", err, logUserToken, userName(request))
		respondError(writer, err.Error())
		return
	}

	s.Logger.Info("Input mappings reloaded", logUserToken, userName(request))
	respondOk(writer)
}
