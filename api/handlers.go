package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aluminumlabs/incognito/pkg/incognito"
	"github.com/aluminumlabs/incognito/pkg/logger"
)

type sessionCreated struct {
	ID string `json:"id"`
}

type cookieValue struct {
	Value string `json:"value"`
}

type cookiePayload struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type dataValue struct {
	Value json.RawMessage `json:"value"`
}

type dataPayload struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

type historyPayload struct {
	URLs []string `json:"urls"`
}

type fetchRequest struct {
	URL string `json:"url"`
}

func (a *API) startSession(r *http.Request) Response {
	id, err := a.facade.StartSession()
	if err != nil {
		a.logger.ErrorContext(r.Context(), "start session", logger.Error(err))
		return JSONError(err)
	}
	return JSON(http.StatusCreated, "session_started", sessionCreated{ID: id})
}

func (a *API) endSession(r *http.Request) Response {
	a.facade.EndSession(chi.URLParam(r, "id"))
	return NoContent()
}

func (a *API) report(r *http.Request) Response {
	st, err := a.facade.Report(chi.URLParam(r, "id"))
	if err != nil {
		return JSONError(err)
	}
	return JSON(http.StatusOK, "session", st)
}

func (a *API) setCookie(r *http.Request) Response {
	var body cookieValue
	if err := bindJSON(r, a.maxBodyBytes, &body); err != nil {
		return JSONError(err)
	}
	if err := a.facade.SetCookie(chi.URLParam(r, "id"), chi.URLParam(r, "name"), body.Value); err != nil {
		if !errors.Is(err, incognito.ErrSessionNotFound) {
			a.logger.ErrorContext(r.Context(), "set cookie", logger.Error(err))
		}
		return JSONError(err)
	}
	return NoContent()
}

func (a *API) getCookie(r *http.Request) Response {
	name := chi.URLParam(r, "name")
	value, ok, err := a.facade.GetCookie(chi.URLParam(r, "id"), name)
	switch {
	case err != nil:
		return JSONError(err)
	case !ok:
		return JSONError(ErrCookieNotFound)
	}
	return JSON(http.StatusOK, "cookie", cookiePayload{Name: name, Value: value})
}

func (a *API) clearCookies(r *http.Request) Response {
	if err := a.facade.ClearCookies(chi.URLParam(r, "id")); err != nil {
		return JSONError(err)
	}
	return NoContent()
}

func (a *API) setData(r *http.Request) Response {
	var body dataValue
	if err := bindJSON(r, a.maxBodyBytes, &body); err != nil {
		return JSONError(err)
	}
	if err := required("value", string(body.Value)); err != nil {
		return JSONError(err)
	}
	if err := a.facade.SetData(chi.URLParam(r, "id"), chi.URLParam(r, "key"), body.Value); err != nil {
		if !errors.Is(err, incognito.ErrSessionNotFound) {
			a.logger.ErrorContext(r.Context(), "set data", logger.Error(err))
		}
		return JSONError(err)
	}
	return NoContent()
}

func (a *API) getData(r *http.Request) Response {
	key := chi.URLParam(r, "key")
	value, ok, err := a.facade.GetData(chi.URLParam(r, "id"), key)
	switch {
	case err != nil:
		return JSONError(err)
	case !ok:
		return JSONError(ErrDataNotFound)
	}
	return JSON(http.StatusOK, "data", dataPayload{Key: key, Value: value})
}

func (a *API) clearData(r *http.Request) Response {
	if err := a.facade.ClearData(chi.URLParam(r, "id")); err != nil {
		return JSONError(err)
	}
	return NoContent()
}

func (a *API) history(r *http.Request) Response {
	urls, err := a.facade.GetHistory(chi.URLParam(r, "id"))
	if err != nil {
		return JSONError(err)
	}
	if urls == nil {
		urls = []string{}
	}
	return JSON(http.StatusOK, "history", historyPayload{URLs: urls})
}

func (a *API) clearHistory(r *http.Request) Response {
	if err := a.facade.ClearHistory(chi.URLParam(r, "id")); err != nil {
		return JSONError(err)
	}
	return NoContent()
}

func (a *API) fetch(r *http.Request) Response {
	var req fetchRequest
	if err := bindJSON(r, a.maxBodyBytes, &req); err != nil {
		return JSONError(err)
	}
	if err := required("url", req.URL); err != nil {
		return JSONError(err)
	}

	res, err := a.facade.Fetch(r.Context(), chi.URLParam(r, "id"), req.URL)
	switch {
	case err == nil, errors.Is(err, incognito.ErrCapacityExceeded):
		return Body(res.Body, string(res.Status))
	case errors.Is(err, incognito.ErrSessionNotFound):
		return JSONError(err)
	default:
		return JSONError(fetchError{err: err})
	}
}
