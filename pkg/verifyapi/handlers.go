package verifyapi

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/totpgate/pkg/authenticator"
	"github.com/dmitrymomot/totpgate/pkg/clientip"
	"github.com/dmitrymomot/totpgate/pkg/logger"
)

func (a *api) verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := decodeJSON(r, &req); err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, ErrUnsupportedMediaType), errors.Is(err, ErrMissingContentType):
			status = http.StatusUnsupportedMediaType
		case errors.Is(err, ErrBodyTooLarge):
			status = http.StatusRequestEntityTooLarge
		}
		writeError(w, status, "invalid request")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := a.auth.Authenticate(r.Context(), authenticator.Request{
		Identity:  req.Identity,
		Code:      req.Code,
		Origin:    clientip.FromContext(r.Context()),
		Attribute: req.Attribute,
	})
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, authenticator.ErrThrottled):
		writeError(w, http.StatusTooManyRequests, "too many attempts")
	case errors.Is(err, authenticator.ErrMissingIdentity):
		writeError(w, http.StatusBadRequest, ErrMissingField.Error())
	case errors.Is(err, authenticator.ErrVerificationFailed):
		writeError(w, http.StatusUnauthorized, "verification failed")
	default:
		a.logger.ErrorContext(r.Context(), "unexpected authentication error", logger.Error(err))
		writeError(w, http.StatusUnauthorized, "verification failed")
	}
}

type healthResponse struct {
	Status   string            `json:"status"`
	Throttle *throttleStats    `json:"throttle,omitempty"`
	Checks   map[string]string `json:"checks,omitempty"`
}

type throttleStats struct {
	Identities int   `json:"identities"`
	Origins    int   `json:"origins"`
	SlowdownMS int64 `json:"slowdown_ms"`
}

func (a *api) live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

func (a *api) ready(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}
	status := http.StatusOK

	for _, c := range a.checks {
		if err := c.Fn(r.Context()); err != nil {
			if resp.Checks == nil {
				resp.Checks = make(map[string]string, len(a.checks))
			}
			resp.Checks[c.Name] = err.Error()
			resp.Status = "unavailable"
			status = http.StatusServiceUnavailable
			a.logger.WarnContext(r.Context(), "readiness check failed", logger.Component(c.Name), logger.Error(err))
		}
	}

	if a.stats != nil {
		s := a.stats.Stats()
		resp.Throttle = &throttleStats{
			Identities: s.Identities,
			Origins:    s.Origins,
			SlowdownMS: s.Slowdown.Milliseconds(),
		}
	}

	writeJSON(w, status, resp)
}
