package server

import (
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-home-io/device-monitor/common"
	"github.com/go-home-io/device-monitor/enums"
	"github.com/go-home-io/device-monitor/providers"
	"github.com/gorilla/mux"
)

// Plain HTTP_200 API response.
func respondOk(writer http.ResponseWriter) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(http.StatusOK)
	io.WriteString(writer, `{ "status": "OK" }`) // nolint: errcheck
}

// Generic API respond.
func respond(writer http.ResponseWriter, data interface{}) {
	d, err := json.Marshal(data)
	if err != nil {
		respondError(writer, err.Error())
		return
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(http.StatusOK)
	writer.Write(d) // nolint: errcheck
}

// Validates whether error is not null and responds different status
// depending on it.
func respondOkError(writer http.ResponseWriter, err error) {
	if err != nil {
		respondError(writer, err.Error())
	} else {
		respondOk(writer)
	}
}

// Plain HTTP_500 API response.
func respondError(writer http.ResponseWriter, err string) {
	respondStatus(writer, http.StatusInternalServerError, err)
}

// Plain HTTP_400 API response.
func respondBadRequest(writer http.ResponseWriter, err error) {
	respondStatus(writer, http.StatusBadRequest, err.Error())
}

// Plain HTTP_404 API response.
func respondNotFound(writer http.ResponseWriter, err error) {
	respondStatus(writer, http.StatusNotFound, err.Error())
}

// Error response with the status.
func respondStatus(writer http.ResponseWriter, status int, problem string) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	d, _ := json.Marshal(map[string]string{"status": "ERROR", "problem": problem}) // nolint: gosec
	writer.Write(d)                                                                // nolint: errcheck
}

// Reads request body.
func readBody(request *http.Request) ([]byte, error) {
	defer request.Body.Close() // nolint: errcheck
	return ioutil.ReadAll(io.LimitReader(request.Body, maxBodySize))
}

// Gets URL param.
func urlParam(request *http.Request, key muxKeys) string {
	return mux.Vars(request)[string(key)]
}

// Parses optional integer query param.
func queryInt(request *http.Request, key string) (int, error) {
	v := request.URL.Query().Get(key)
	if "" == v {
		return 0, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &ErrBadRequest{Reason: key + " is not a number"}
	}

	return n, nil
}

// Return HTTP_UNAUTHORIZED status.
func respondUnAuth(writer http.ResponseWriter) {
	writer.Header().Set("WWW-Authenticate", `Basic realm="monitor"`)
	http.Error(writer, "Unauthorized", http.StatusUnauthorized)
}

// Return HTTP_FORBIDDEN status.
func respondForbidden(writer http.ResponseWriter) {
	http.Error(writer, "Forbidden", http.StatusForbidden)
}

// Logger middleware for the API.
func (s *MonitorServer) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Logger.Debug("REST invocation", common.LogURLToken, r.RequestURI)
		next.ServeHTTP(w, r)
	})
}

// Authz middleware.
// Reads are checked with get verb, everything else and WS bridge with command verb.
func (s *MonitorServer) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := s.security.GetUser(r.Header)
		if err != nil {
			s.Logger.Warn("Unauthorized access attempt", common.LogURLToken, r.RequestURI)
			respondUnAuth(w)
			return
		}

		resource := requestResource(r)
		allowed := user.Get(resource)
		if http.MethodGet != r.Method || strings.HasSuffix(r.URL.Path, "/ws") {
			allowed = user.Command(resource)
		}

		if !allowed {
			s.Logger.Warn("Forbidden access attempt", common.LogURLToken, r.RequestURI, logUserToken, user.Name())
			respondForbidden(w)
			return
		}

		ctx := context.WithValue(r.Context(), ctxtUserName, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Gets resource checked by the authz middleware.
func requestResource(request *http.Request) string {
	vars := mux.Vars(request)
	if p, ok := vars[string(urlDevicePath)]; ok {
		return p
	}

	if p, ok := vars[string(urlPropertyPath)]; ok {
		return p
	}

	if n, ok := vars[string(urlDeviceName)]; ok {
		if category, err := enums.CategoryString(vars[string(urlCategory)]); err == nil {
			return category.Path(n)
		}
	}

	return resourceEngine
}

// Gets current user out of context.
func getContextUser(request *http.Request) providers.IAuthenticatedUser {
	usr, _ := request.Context().Value(ctxtUserName).(providers.IAuthenticatedUser)
	return usr
}

// Gets current user name, anonymous if authorization is disabled.
func userName(request *http.Request) string {
	usr := getContextUser(request)
	if nil == usr {
		return "anonymous"
	}

	return usr.Name()
}
